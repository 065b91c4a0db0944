package main

import "time"

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL         []string      `name:"url" placeholder:"NAME:LOCATION" sep:"none" env:"LLMSTXT_URL" help:"Documentation source as name:location (repeatable). Location is an http(s) URL, file: URL or path."`
	URLs        string        `name:"urls" placeholder:"\"NAME:LOCATION ...\"" env:"LLMSTXT_URLS" help:"Space separated list of name:location sources."`
	NoDefaults  bool          `name:"no-defaults" env:"LLMSTXT_NO_DEFAULTS" help:"Do not include the bundled default sources."`
	AllowDomain []string      `name:"allow-domain" placeholder:"HOST" env:"LLMSTXT_ALLOW_DOMAIN" help:"Allow fetching from this domain (repeatable, '*' allows every domain). Defaults to the hosts of the configured sources."`
	LocalRoot   []string      `name:"local-root" placeholder:"DIR" env:"LLMSTXT_LOCAL_ROOT" help:"Only read local files under this directory (repeatable). Unrestricted when unset."`
	Config      string        `name:"config" short:"c" placeholder:"FILE" env:"LLMSTXT_CONFIG" help:"YAML configuration file, applied before command-line sources."`
	Concurrency int           `name:"concurrency" default:"1" env:"LLMSTXT_CONCURRENCY" help:"Locations fetched in parallel within one request."`
	Timeout     time.Duration `name:"timeout" short:"t" default:"0s" env:"LLMSTXT_TIMEOUT" help:"Timeout per remote fetch (0 disables)."`
	Rate        float64       `name:"rate" default:"0" env:"LLMSTXT_RATE" help:"Maximum remote requests per second per domain (0 disables)."`
	RateBurst   int           `name:"rate-burst" default:"1" env:"LLMSTXT_RATE_BURST" help:"Requests per domain admitted back to back before --rate applies."`
	Markdown    bool          `name:"markdown" env:"LLMSTXT_MARKDOWN" help:"Convert HTML responses to Markdown."`
	Listen      string        `name:"listen" placeholder:"ADDR" env:"LLMSTXT_LISTEN" help:"Serve streamable HTTP on this address instead of stdio."`
	Debug       bool          `name:"debug" env:"LLMSTXT_DEBUG" help:"Log every resolve, access check and fetch."`
	Version     bool          `name:"version" help:"Print version and exit."`
}
