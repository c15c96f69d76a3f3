package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	// StylesheetName is the preview stylesheet inlined into every page.
	StylesheetName = "preview.css"
	// PageTemplate is the entry template unless the theme overrides it.
	PageTemplate = "page.tmpl"
)

// TemplatesFS exposes the embedded template bundle rooted at its directory,
// so overrides only need to provide the partials they change.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic("html: embedded templates missing: " + err.Error())
	}
	return sub
}

// AssetsFS exposes the embedded stylesheet so callers can serve it instead
// of relying on the inlined copy.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

func defaultStylesheet() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
}
