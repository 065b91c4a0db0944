// Package llmstxt serves documentation sources (llms.txt files, Markdown
// pages, local notes) to agents over the Model Context Protocol. It lists a
// configured registry of named sources and fetches the raw text of remote
// URLs, file: URLs and local paths behind a domain allowlist.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, fs/, goquery/, mcp/).
package llmstxt
