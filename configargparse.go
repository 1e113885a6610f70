package configargparse

import (
	"sync"
)

// Parse resolves every declared option and hands the synthesized token
// stream to the underlying pflag engine, which performs all type
// conversion, choice validation, and required/default handling. The
// returned ledger records the winning source per option.
func (p *Parser) Parse(argv []string) (*Ledger, error) {
	stream, ledger, err := p.Resolve(argv)
	if err != nil {
		return nil, err
	}
	if err := p.fs.Parse(stream); err != nil {
		return nil, err
	}
	return ledger, nil
}

// Ledger returns the record built by the most recent Resolve or Parse
// call, or nil before the first call.
func (p *Parser) Ledger() *Ledger { return p.ledger }

// FormatValues renders the most recent ledger as a human-readable audit
// report. It returns "" before the first parse.
func (p *Parser) FormatValues() string {
	if p.ledger == nil {
		return ""
	}
	return p.ledger.Report()
}

// Process-wide registry of named parsers, created lazily on first lookup.
// It lets independent modules register options against a shared
// configuration surface, the way named loggers share a logging surface.
var (
	registryMu sync.Mutex
	registry   map[string]*Parser
)

// GetParser returns the parser registered under name, creating and caching
// it on first access. Intended for sequential use during process startup;
// construct parsers before spawning goroutines that read them.
func GetParser(name string) *Parser {
	registryMu.Lock()
	defer registryMu.Unlock()
	if registry == nil {
		registry = make(map[string]*Parser)
	}
	p, ok := registry[name]
	if !ok {
		p = New(name)
		registry[name] = p
	}
	return p
}
