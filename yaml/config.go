// Package yaml loads server configuration files written in YAML.
package yaml

import (
	"fmt"
	"os"
	"regexp"

	"github.com/fwojciec/llmstxt"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration. Every field is optional; command-line
// flags are layered on top of it.
//
//	sources:
//	  - name: hono
//	    location: https://hono.dev/llms.txt
//	  - name: notes
//	    location: ./docs/llms.txt
//	allow_domains: [hono.dev]
//	local_roots: [./docs]
//	no_defaults: true
type Config struct {
	Sources      []llmstxt.Source `yaml:"sources"`
	AllowDomains []string         `yaml:"allow_domains"`
	LocalRoots   []string         `yaml:"local_roots"`
	NoDefaults   bool             `yaml:"no_defaults"`
}

var envVarRe = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads a configuration file from the given path.
// Environment variables in the format ${VAR_NAME} are expanded before parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, llmstxt.WrapError(err, llmstxt.EINVALID, "reading config file: %v", err)
	}
	return Parse(data)
}

// Parse decodes configuration from YAML bytes.
func Parse(data []byte) (*Config, error) {
	expanded := envVarRe.ReplaceAllStringFunc(string(data), func(match string) string {
		return os.Getenv(envVarRe.FindStringSubmatch(match)[1])
	})

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, llmstxt.WrapError(err, llmstxt.EINVALID, "parsing config file: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate returns an error for the first source missing a name or location.
func (c *Config) Validate() error {
	for i, s := range c.Sources {
		if s.Name == "" {
			return llmstxt.Errorf(llmstxt.EINVALID, "sources[%d]: name required", i)
		}
		if s.Location == "" {
			return llmstxt.Errorf(llmstxt.EINVALID, "sources[%d] (%s): location required", i, s.Name)
		}
	}
	return nil
}

// String summarizes the config for logs.
func (c *Config) String() string {
	return fmt.Sprintf("%d sources, %d allowed domains, %d local roots", len(c.Sources), len(c.AllowDomains), len(c.LocalRoots))
}
