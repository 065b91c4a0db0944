package llmstxt

import (
	"net/url"
	"strings"
)

// TargetKind identifies which variant of a Target is populated.
type TargetKind int

// TargetKind constants.
const (
	// TargetUnsupported is a location that is neither an accepted URL nor an
	// existing local path.
	TargetUnsupported TargetKind = iota

	// TargetRemote is an http or https URL.
	TargetRemote

	// TargetFileURL is a file: URL converted to a local path.
	TargetFileURL

	// TargetLocalPath is a filesystem path that existed at resolution time.
	TargetLocalPath
)

// String returns the kind name used in logs.
func (k TargetKind) String() string {
	switch k {
	case TargetRemote:
		return "remote"
	case TargetFileURL:
		return "file_url"
	case TargetLocalPath:
		return "local_path"
	default:
		return "unsupported"
	}
}

// Target is the resolved form of a location string. Exactly one variant is
// active, selected by Kind:
//
//   - TargetRemote: URL and Hostname (always lowercase).
//   - TargetFileURL: Path (absolute) and URL (the original file: URL).
//   - TargetLocalPath: Path (absolute).
//   - TargetUnsupported: Reason.
//
// Input always holds the original location string. Targets are not modified
// after construction.
type Target struct {
	Kind     TargetKind
	Input    string
	URL      *url.URL
	Hostname string
	Path     string
	Reason   string
}

// IsLocal reports whether the target reads from the local filesystem.
func (t *Target) IsLocal() bool {
	return t.Kind == TargetFileURL || t.Kind == TargetLocalPath
}

// Location returns the resolved location: the URL for remote targets, the
// absolute path for local ones and the original input otherwise.
func (t *Target) Location() string {
	switch t.Kind {
	case TargetRemote:
		return t.URL.String()
	case TargetFileURL, TargetLocalPath:
		return t.Path
	default:
		return t.Input
	}
}

// NewRemoteTarget returns a remote target for u with a lowercased hostname.
func NewRemoteTarget(input string, u *url.URL) *Target {
	return &Target{
		Kind:     TargetRemote,
		Input:    input,
		URL:      u,
		Hostname: strings.ToLower(u.Hostname()),
	}
}

// NewFileURLTarget returns a target for a file: URL resolved to path.
func NewFileURLTarget(input string, u *url.URL, path string) *Target {
	return &Target{Kind: TargetFileURL, Input: input, URL: u, Path: path}
}

// NewLocalPathTarget returns a target for an existing local path.
func NewLocalPathTarget(input, path string) *Target {
	return &Target{Kind: TargetLocalPath, Input: input, Path: path}
}

// NewUnsupportedTarget returns a target that cannot be fetched.
func NewUnsupportedTarget(input, reason string) *Target {
	return &Target{Kind: TargetUnsupported, Input: input, Reason: reason}
}

// Resolver classifies location strings into targets.
type Resolver interface {
	// Resolve never fails; locations that cannot be used come back as
	// TargetUnsupported with a Reason.
	Resolve(input string) *Target
}
