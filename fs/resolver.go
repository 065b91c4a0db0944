// Package fs implements the filesystem side of target resolution: it
// classifies location strings and reads local documentation files.
package fs

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/llmstxt"
)

// Ensure Resolver implements llmstxt.Resolver at compile time.
var _ llmstxt.Resolver = (*Resolver)(nil)

// Resolver classifies location strings. Anything that is not an absolute URL
// is treated as a path relative to the working directory and must exist.
type Resolver struct {
	// Stat checks path existence. Defaults to os.Stat.
	Stat func(name string) (os.FileInfo, error)
}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{Stat: os.Stat}
}

// Resolve implements llmstxt.Resolver.
func (r *Resolver) Resolve(input string) *llmstxt.Target {
	u, urlErr := ParseAbsoluteURL(input)
	if urlErr == nil {
		switch u.Scheme {
		case "http", "https":
			return llmstxt.NewRemoteTarget(input, u)
		case "file":
			path, err := FileURLToPath(u)
			if err != nil {
				return llmstxt.NewUnsupportedTarget(input, fmt.Sprintf("failed to convert file: URL to path: %v", err))
			}
			return llmstxt.NewFileURLTarget(input, u, path)
		default:
			return llmstxt.NewUnsupportedTarget(input, fmt.Sprintf("unsupported URL scheme: %s:", u.Scheme))
		}
	}

	path, err := filepath.Abs(input)
	if err == nil {
		_, err = r.stat(path)
		if err != nil {
			err = fmt.Errorf("path does not exist or is inaccessible: %s", path)
		}
	}
	if err != nil {
		return llmstxt.NewUnsupportedTarget(input, fmt.Sprintf("invalid URL (%v) and failed to resolve as path: %v", urlErr, err))
	}
	return llmstxt.NewLocalPathTarget(input, path)
}

func (r *Resolver) stat(name string) (os.FileInfo, error) {
	if r.Stat == nil {
		return os.Stat(name)
	}
	return r.Stat(name)
}

// ParseAbsoluteURL parses s and requires a scheme. http and https URLs must
// also carry a host. Windows drive paths such as C:\docs are rejected so
// they fall through to path resolution.
func ParseAbsoluteURL(s string) (*url.URL, error) {
	if filepath.VolumeName(s) != "" {
		return nil, fmt.Errorf("%q is a filesystem path", s)
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("%q is not an absolute URL", s)
	}
	if (u.Scheme == "http" || u.Scheme == "https") && u.Host == "" {
		return nil, fmt.Errorf("%q has no host", s)
	}
	return u, nil
}

// FileURLToPath converts a file: URL to an absolute filesystem path.
func FileURLToPath(u *url.URL) (string, error) {
	if u.Scheme != "file" {
		return "", fmt.Errorf("URL scheme must be file, got %q", u.Scheme)
	}
	if u.Opaque != "" {
		return "", errors.New("file URL must be absolute (file:///path)")
	}
	if u.Host != "" && !strings.EqualFold(u.Hostname(), "localhost") {
		return "", fmt.Errorf("file URL host must be \"localhost\" or empty, got %q", u.Host)
	}
	if strings.Contains(strings.ToLower(u.EscapedPath()), "%2f") {
		return "", errors.New("file URL path must not include encoded / characters")
	}

	p := u.Path
	if p == "" {
		p = "/"
	}
	// file:///C:/docs on Windows carries a leading slash before the volume.
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' && filepath.VolumeName(p[1:]) != "" {
		p = p[1:]
	}
	return filepath.Abs(filepath.FromSlash(p))
}

// PathToFileURL returns the file: URL for an absolute path.
func PathToFileURL(path string) *url.URL {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return &url.URL{Scheme: "file", Path: p}
}
