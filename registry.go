package llmstxt

import "strings"

// Source is a named documentation location. Location is kept unresolved;
// it is only classified when something fetches it.
type Source struct {
	Name     string `json:"name" yaml:"name"`
	Location string `json:"location" yaml:"location"`
}

// Registry is an ordered, read-only set of sources keyed by name.
type Registry struct {
	sources []Source
}

// NewRegistry returns a registry of sources in the order given. When a name
// repeats, the later location wins and the name keeps its first position.
func NewRegistry(sources ...Source) *Registry {
	r := &Registry{}
	index := make(map[string]int, len(sources))
	for _, s := range sources {
		if i, ok := index[s.Name]; ok {
			r.sources[i].Location = s.Location
			continue
		}
		index[s.Name] = len(r.sources)
		r.sources = append(r.sources, s)
	}
	return r
}

// Sources returns a copy of the sources in insertion order.
func (r *Registry) Sources() []Source {
	if r == nil {
		return nil
	}
	return append([]Source(nil), r.sources...)
}

// Lookup returns the location registered under name.
func (r *Registry) Lookup(name string) (string, bool) {
	for _, s := range r.Sources() {
		if s.Name == name {
			return s.Location, true
		}
	}
	return "", false
}

// Len returns the number of sources.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.sources)
}

// SourcesHeader is the first line of FormatSources output.
const SourcesHeader = "Available documentation sources:"

// FormatSources renders the registry as a header followed by one
// "- name: location" line per source, in insertion order.
func FormatSources(r *Registry) string {
	var b strings.Builder
	b.WriteString(SourcesHeader)
	b.WriteString("\n")
	for _, s := range r.Sources() {
		b.WriteString("- ")
		b.WriteString(s.Name)
		b.WriteString(": ")
		b.WriteString(s.Location)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}
