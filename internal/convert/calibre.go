package convert

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/alnah/go-md2epub/internal/fileutil"
)

// Sentinel errors for transcoding.
var (
	ErrSamePath        = errors.New("input and output paths must differ")
	ErrTranscodeFailed = errors.New("ebook transcoding failed")
)

// Transcoder converts a finished book between e-book formats by invoking
// Calibre's ebook-convert.
type Transcoder struct {
	Runner CommandRunner
	Binary string // ebook-convert executable, default "ebook-convert"
}

// NewTranscoder creates a Transcoder with a real command runner.
func NewTranscoder() *Transcoder {
	return &Transcoder{Runner: &ExecRunner{}}
}

func (t *Transcoder) binary() string {
	if t.Binary != "" {
		return t.Binary
	}
	return "ebook-convert"
}

// Transcode converts inputPath to outputPath, passing extraArgs through to
// ebook-convert. Identical input and output paths are rejected before the
// tool runs; a missing output file afterwards is a hard failure regardless
// of exit status.
func (t *Transcoder) Transcode(inputPath, outputPath string, extraArgs []string) error {
	if filepath.Clean(inputPath) == filepath.Clean(outputPath) {
		return fmt.Errorf("%w: %s", ErrSamePath, inputPath)
	}

	args := append([]string{inputPath, outputPath}, extraArgs...)
	_, stderr, err := t.Runner.Run(t.binary(), args...)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTranscodeFailed, stderr, err)
	}
	if !fileutil.FileExists(outputPath) {
		return fmt.Errorf("%w: %s", ErrNoOutput, outputPath)
	}
	return nil
}
