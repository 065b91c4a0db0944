package fs

import (
	"context"
	"errors"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/fwojciec/llmstxt"
)

// Ensure Reader implements llmstxt.Fetcher at compile time.
var _ llmstxt.Fetcher = (*Reader)(nil)

// Reader reads local targets as UTF-8 text in a single operation.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Fetch implements llmstxt.Fetcher for TargetFileURL and TargetLocalPath.
// Errors carry the resolved absolute path, never the original input.
func (r *Reader) Fetch(ctx context.Context, target *llmstxt.Target) (*llmstxt.Content, error) {
	if !target.IsLocal() {
		return nil, llmstxt.Errorf(llmstxt.EINTERNAL, "reader cannot fetch %s target %q", target.Kind, target.Input)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := target.Path
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, readError(path, err)
	}
	if !utf8.Valid(data) {
		return nil, llmstxt.Errorf(llmstxt.EENCODING, "file is not valid UTF-8 text: %s", path)
	}

	return &llmstxt.Content{
		Location:    path,
		Text:        string(data),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
	}, nil
}

func readError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return llmstxt.WrapError(err, llmstxt.ENOTFOUND, "file not found: %s", path)
	case errors.Is(err, fs.ErrPermission):
		return llmstxt.WrapError(err, llmstxt.EPERMISSION, "permission denied reading %s", path)
	}
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		return llmstxt.WrapError(err, llmstxt.EINVALID, "cannot read %s: is a directory", path)
	}
	return llmstxt.WrapError(err, llmstxt.EINTERNAL, "failed to read %s: %v", path, err)
}
