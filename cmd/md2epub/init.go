package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alnah/go-md2epub/internal/config"
	"github.com/alnah/go-md2epub/internal/yamlutil"
)

// ErrAlreadyInitialized signals an existing book.yaml that would be overwritten.
var ErrAlreadyInitialized = errors.New("book.yaml already exists")

const starterChapter = `# Introduction {#intro}

Welcome. Cross-reference figures with ` + "`\\@ref(fig:example)`" + ` and label
captions with ` + "`(\\#fig:example)`" + `.
`

// runInit creates a book.yaml and a starter chapter.
func runInit(args []string, stdout io.Writer) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, "book.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%w: %s", ErrAlreadyInitialized, configPath)
	}

	cfg := config.DefaultConfig()
	cfg.Book.Title = "My Book"
	cfg.Book.Chapters = []string{"index.md"}

	data, err := yamlutil.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil { // #nosec G306 -- project scaffold
		return fmt.Errorf("writing %s: %w", configPath, err)
	}

	chapterPath := filepath.Join(dir, "index.md")
	if !fileExists(chapterPath) {
		if err := os.WriteFile(chapterPath, []byte(starterChapter), 0o644); err != nil { // #nosec G306 -- project scaffold
			return fmt.Errorf("writing %s: %w", chapterPath, err)
		}
	}

	fmt.Fprintf(stdout, "Initialized book project in %s\n", dir)
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
