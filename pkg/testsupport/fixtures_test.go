package testsupport_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func TestSampleListIsWellFormed(t *testing.T) {
	list := testsupport.SampleList(t)
	if list.Len() != len(testsupport.SampleConfigs()) {
		t.Fatalf("unexpected length %d", list.Len())
	}
	if !list.HasUniqueIDs() {
		t.Fatalf("sample ids must be unique: %v", list.IDs())
	}
}

func TestLoadList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.json")
	if err := os.WriteFile(path, []byte(`[{"id":"a","type":"email","label":"Email"}]`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	list := testsupport.MustLoadList(t, path)
	if list.Len() != 1 || list.At(0).Label() != "Email" {
		t.Fatalf("unexpected list %v", list.IDs())
	}
	if _, err := testsupport.LoadList(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
