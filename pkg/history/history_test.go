package history_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/goliatone/go-formbuilder/pkg/history"
)

func TestCommitPushesAndClearsRedo(t *testing.T) {
	store := history.New(0)
	store.Commit(1)
	store.Commit(2)
	store.Undo()
	if !store.CanRedo() {
		t.Fatalf("expected redo after undo")
	}

	store.Commit(3)
	if store.CanRedo() {
		t.Fatalf("commit must clear the redo stack")
	}
	if store.Present() != 3 || store.UndoDepth() != 2 {
		t.Fatalf("unexpected state present=%d undo=%d", store.Present(), store.UndoDepth())
	}
}

func TestCommitOfPresentIsNoop(t *testing.T) {
	store := history.New("a")
	if store.Commit("a") {
		t.Fatalf("committing the present value should report no change")
	}
	if store.CanUndo() {
		t.Fatalf("no snapshot should be recorded")
	}
}

func TestPointerIdentity(t *testing.T) {
	type box struct{ n int }
	first := &box{n: 1}
	store := history.New(first)
	if !store.Commit(&box{n: 1}) {
		t.Fatalf("a new pointer with equal content is still a change")
	}
}

func TestCommitSilentLeavesStacks(t *testing.T) {
	store := history.New(0)
	store.Commit(1)
	store.Undo()

	store.CommitSilent(5)
	if store.Present() != 5 {
		t.Fatalf("expected present 5, got %d", store.Present())
	}
	if store.UndoDepth() != 0 || store.RedoDepth() != 1 {
		t.Fatalf("silent commit touched the stacks: undo=%d redo=%d", store.UndoDepth(), store.RedoDepth())
	}
}

func TestUndoRedoOnEmptyStacks(t *testing.T) {
	store := history.New(7)
	if store.Undo() || store.Redo() {
		t.Fatalf("undo/redo on empty stacks must be no-ops")
	}
	if store.Present() != 7 {
		t.Fatalf("present changed to %d", store.Present())
	}
}

func TestLimitEvictsOldest(t *testing.T) {
	store := history.New(0, history.WithLimit[int](3))
	for i := 1; i <= 5; i++ {
		store.Commit(i)
	}
	var seen []int
	for store.Undo() {
		seen = append(seen, store.Present())
	}
	if diff := cmp.Diff([]int{4, 3, 2}, seen); diff != "" {
		t.Fatalf("undo sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestReset(t *testing.T) {
	store := history.New(0)
	store.Commit(1)
	store.Commit(2)
	store.Undo()
	store.Reset(9)
	if store.Present() != 9 || store.CanUndo() || store.CanRedo() {
		t.Fatalf("reset should clear stacks and set present")
	}
}

func TestSubscribeReceivesChanges(t *testing.T) {
	store := history.New(0)
	var ops []history.Op
	unsubscribe := store.Subscribe(func(c history.Change[int]) {
		ops = append(ops, c.Op)
		if c.Present != store.Present() {
			t.Errorf("subscriber saw stale state")
		}
	})
	store.Commit(1)
	store.CommitSilent(2)
	store.Undo()
	store.Redo()
	store.Commit(2)
	unsubscribe()
	store.Reset(0)

	want := []history.Op{history.OpCommit, history.OpCommitSilent, history.OpUndo, history.OpRedo}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Fatalf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestUndoIsInverseOfCommit(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seq := rapid.SliceOfN(rapid.IntRange(1, 1000), 1, 30).Draw(rt, "seq")
		store := history.New(0)
		for _, v := range seq {
			store.Commit(v)
		}
		before := store.Present()
		depth := store.UndoDepth()

		next := before + 1
		store.Commit(next)
		store.Undo()
		if store.Present() != before {
			rt.Fatalf("undo did not restore %d, got %d", before, store.Present())
		}
		store.Redo()
		if store.Present() != next {
			rt.Fatalf("redo did not restore %d, got %d", next, store.Present())
		}
		if got := store.UndoDepth(); got > history.DefaultLimit || got < depth {
			rt.Fatalf("unexpected undo depth %d (before %d)", got, depth)
		}
	})
}

func TestUndoDepthIsBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		limit := rapid.IntRange(1, 15).Draw(rt, "limit")
		commits := rapid.IntRange(0, 40).Draw(rt, "commits")
		store := history.New(0, history.WithLimit[int](limit))
		for i := 1; i <= commits; i++ {
			store.Commit(i)
		}
		want := commits
		if want > limit {
			want = limit
		}
		if store.UndoDepth() != want {
			rt.Fatalf("undo depth %d, want %d", store.UndoDepth(), want)
		}
		undone := 0
		for store.Undo() {
			undone++
		}
		if undone != want {
			rt.Fatalf("undid %d steps, want %d", undone, want)
		}
	})
}
