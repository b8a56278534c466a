// Package assets provides the embedded default book stylesheet.
package assets

import (
	"embed"

	"github.com/alnah/go-md2epub/internal/fileutil"
)

//go:embed styles/*
var styles embed.FS

// DefaultStylesheet returns the embedded default EPUB stylesheet.
func DefaultStylesheet() string {
	content, err := styles.ReadFile("styles/epub.css")
	if err != nil {
		// The file is embedded at build time; a read failure is a broken build.
		panic("assets: embedded stylesheet missing: " + err.Error())
	}
	return string(content)
}

// WriteDefaultStylesheet materializes the embedded stylesheet as a scoped
// temp file for the external converter. The cleanup function must run on
// all exit paths.
func WriteDefaultStylesheet() (path string, cleanup func(), err error) {
	return fileutil.WriteTempFile(DefaultStylesheet(), "css")
}
