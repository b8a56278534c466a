package convert

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// fakeEbookRunner writes the positional output argument like ebook-convert
// would.
type fakeEbookRunner struct {
	calls  [][]string
	err    error
	stderr string
}

func (r *fakeEbookRunner) Run(name string, args ...string) (string, string, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	if r.err != nil {
		return "", r.stderr, r.err
	}
	if len(args) >= 2 {
		if err := os.WriteFile(args[1], []byte("out"), 0o600); err != nil {
			return "", "", err
		}
	}
	return "", "", nil
}

func TestTranscodeArgs(t *testing.T) {
	runner := &fakeEbookRunner{}
	tr := &Transcoder{Runner: runner}

	out := filepath.Join(t.TempDir(), "book.mobi")
	if err := tr.Transcode("book.epub", out, []string{"--output-profile", "kindle"}); err != nil {
		t.Fatalf("Transcode() error = %v", err)
	}

	want := []string{"ebook-convert", "book.epub", out, "--output-profile", "kindle"}
	if !reflect.DeepEqual(runner.calls[0], want) {
		t.Errorf("call = %v, want %v", runner.calls[0], want)
	}
}

func TestTranscodeSamePathRejected(t *testing.T) {
	runner := &fakeEbookRunner{}
	tr := &Transcoder{Runner: runner}

	err := tr.Transcode("book.epub", "./book.epub", nil)
	if !errors.Is(err, ErrSamePath) {
		t.Fatalf("Transcode() error = %v, want ErrSamePath", err)
	}
	if len(runner.calls) != 0 {
		t.Errorf("runner called %d times, want 0", len(runner.calls))
	}
}

func TestTranscodeRunnerError(t *testing.T) {
	runner := &fakeEbookRunner{err: errors.New("exit status 2"), stderr: "unsupported"}
	tr := &Transcoder{Runner: runner, Binary: "/opt/calibre/ebook-convert"}

	err := tr.Transcode("book.epub", filepath.Join(t.TempDir(), "book.azw3"), nil)
	if !errors.Is(err, ErrTranscodeFailed) {
		t.Errorf("Transcode() error = %v, want ErrTranscodeFailed", err)
	}
	if runner.calls[0][0] != "/opt/calibre/ebook-convert" {
		t.Errorf("binary = %q", runner.calls[0][0])
	}
}
