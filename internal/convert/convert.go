// Package convert wraps the external document converters the pipeline
// depends on: Pandoc for producing the intermediate HTML representation and
// the final book, Calibre's ebook-convert for format transcoding, and a
// pure-Go goldmark backend for environments without Pandoc.
package convert

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
)

// Converter produces the intermediate HTML document for one Markdown
// source file.
type Converter interface {
	ConvertFile(inputPath, outputPath string) error
}

// CommandRunner abstracts command execution to enable testing without real
// subprocesses.
type CommandRunner interface {
	Run(name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(name string, args ...string) (string, string, error) {
	cmd := exec.Command(name, args...) // #nosec G204 -- binary and args come from trusted configuration

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return "", "", fmt.Errorf("creating stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", "", fmt.Errorf("starting command: %w", err)
	}

	stderrContent, err := io.ReadAll(stderrPipe)
	if err != nil {
		return "", "", fmt.Errorf("reading stderr: %w", err)
	}

	err = cmd.Wait()
	return stdout.String(), string(stderrContent), err
}
