package main

import (
	_ "embed"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fwojciec/llmstxt"
	"github.com/fwojciec/llmstxt/fs"
	"github.com/fwojciec/llmstxt/goldmark"
	"github.com/fwojciec/llmstxt/yaml"
)

//go:embed defaults.md
var defaultSources []byte

// Settings is the validated startup configuration.
type Settings struct {
	Registry   *llmstxt.Registry
	Allowlist  llmstxt.Allowlist
	LocalRoots []string
}

// loadSettings assembles sources from, in order, the bundled defaults, the
// config file, --url and --urls. Later entries replace earlier ones with the
// same name. Malformed entries are logged and skipped.
func loadSettings(cli *CLI, logger *slog.Logger) (*Settings, error) {
	file := &yaml.Config{}
	if cli.Config != "" {
		var err error
		if file, err = yaml.Load(cli.Config); err != nil {
			return nil, err
		}
		logger.Info("loaded config file", "path", cli.Config, "summary", file.String())
	}

	b := &sourceBuilder{logger: logger}
	if !cli.NoDefaults && !file.NoDefaults {
		for _, spec := range goldmark.ParseSourceList(defaultSources) {
			b.addSpec(spec, "defaults")
		}
	}
	for _, s := range file.Sources {
		b.add(s.Name, s.Location, "config")
	}
	for _, spec := range cli.URL {
		b.addSpec(spec, "--url")
	}
	for _, spec := range strings.Fields(cli.URLs) {
		b.addSpec(spec, "--urls")
	}

	registry := llmstxt.NewRegistry(b.sources...)
	if registry.Len() == 0 {
		logger.Warn("no documentation sources were configured (check defaults, --config, --url, --urls)")
	}

	roots := make([]string, 0, len(file.LocalRoots)+len(cli.LocalRoot))
	for _, root := range append(append([]string{}, file.LocalRoots...), cli.LocalRoot...) {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, llmstxt.WrapError(err, llmstxt.EINVALID, "invalid local root %q: %v", root, err)
		}
		roots = append(roots, abs)
	}

	return &Settings{
		Registry:   registry,
		Allowlist:  allowlist(append(append([]string{}, file.AllowDomains...), cli.AllowDomain...), registry, logger),
		LocalRoots: roots,
	}, nil
}

type sourceBuilder struct {
	sources []llmstxt.Source
	logger  *slog.Logger
}

// addSpec adds a "name:location" entry, split on the first colon.
func (b *sourceBuilder) addSpec(spec, origin string) {
	name, location, ok := strings.Cut(spec, ":")
	if !ok {
		b.logger.Warn("invalid source format, expected name:location", "origin", origin, "value", spec)
		return
	}
	b.add(name, location, origin)
}

// add keeps locations that parse as absolute URLs as given, stores locations
// starting with "/" or "." as absolute paths and skips anything else.
func (b *sourceBuilder) add(name, location, origin string) {
	name, location = strings.TrimSpace(name), strings.TrimSpace(location)
	if name == "" || location == "" {
		b.logger.Warn("invalid source format, name or location is empty", "origin", origin, "name", name, "location", location)
		return
	}

	_, err := fs.ParseAbsoluteURL(location)
	switch {
	case err == nil:
	case strings.HasPrefix(location, "/") || strings.HasPrefix(location, "."):
		abs, absErr := filepath.Abs(location)
		if absErr != nil {
			b.logger.Warn("skipping source", "origin", origin, "name", name, "location", location, "err", absErr)
			return
		}
		location = abs
	default:
		b.logger.Warn("invalid URL or path for source, skipping", "origin", origin, "name", name, "location", location, "err", err)
		return
	}

	b.logger.Debug("registered source", "origin", origin, "name", name, "location", location)
	b.sources = append(b.sources, llmstxt.Source{Name: name, Location: location})
}

// allowlist returns the explicit domains when any are given. Otherwise it
// allows the hosts of the registry's http and https sources.
func allowlist(explicit []string, registry *llmstxt.Registry, logger *slog.Logger) llmstxt.Allowlist {
	if len(explicit) > 0 {
		for _, d := range explicit {
			if strings.TrimSpace(d) == "" {
				logger.Warn("skipping empty --allow-domain entry")
			}
		}
		return llmstxt.NewAllowlist(explicit...)
	}

	var inferred []string
	for _, s := range registry.Sources() {
		u, err := fs.ParseAbsoluteURL(s.Location)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			continue
		}
		inferred = append(inferred, u.Hostname())
	}

	switch {
	case len(inferred) == 0 && registry.Len() > 0:
		logger.Warn("no remote sources configured and no --allow-domain given; remote fetches will be denied")
	case len(inferred) == 0:
		logger.Warn("no domains specified or inferred; remote fetches will be denied")
	}
	return llmstxt.NewAllowlist(inferred...)
}
