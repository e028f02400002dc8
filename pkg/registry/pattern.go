package registry

import (
	"regexp"
	"strings"
	"sync"
)

// NamePattern keeps a regular expression matching exactly the registered
// schema names, for use as a route-parameter constraint. It subscribes to
// the schema registry and refreshes itself whenever a schema is added.
type NamePattern struct {
	mu sync.RWMutex
	re *regexp.Regexp
}

// NewNamePattern builds a pattern from the registry's current names and
// keeps it current via OnSchemaAdded.
func NewNamePattern(schemas *SchemaRegistry) *NamePattern {
	p := &NamePattern{}
	p.update(schemas.Names())
	schemas.OnSchemaAdded(p.update)
	return p
}

func (p *NamePattern) update(names []string) {
	var re *regexp.Regexp
	if len(names) > 0 {
		quoted := make([]string, len(names))
		for i, n := range names {
			quoted[i] = regexp.QuoteMeta(n)
		}
		re = regexp.MustCompile("^(?:" + strings.Join(quoted, "|") + ")$")
	}

	p.mu.Lock()
	p.re = re
	p.mu.Unlock()
}

// MatchString reports whether s is a registered schema name. With no
// schemas registered, nothing matches.
func (p *NamePattern) MatchString(s string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.re != nil && p.re.MatchString(s)
}

// Pattern returns the current regular expression source, or the empty
// string when no schemas are registered.
func (p *NamePattern) Pattern() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.re == nil {
		return ""
	}
	return p.re.String()
}
