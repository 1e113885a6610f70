package configargparse

import (
	"fmt"
	"os"
	"strings"
)

// Resolve inspects argv for existing occurrences of each declared option,
// synthesizes tokens from the environment and the located config file for
// the options still unmet, and returns the combined token stream together
// with the ledger of winning sources.
//
// Precedence is enforced by omission: each source only contributes tokens
// for options not already resolved by a higher-precedence source, so the
// stream is safe to hand to the engine unmodified. Options resolved by no
// source are absent from the stream and attributed to the default source.
//
// Resolve is idempotent: identical argv, environment, and file contents
// yield an identical stream and ledger.
func (p *Parser) Resolve(argv []string) ([]string, *Ledger, error) {
	ledger := newLedger()
	keyMapper := p.keyMapper()
	tokenizer := p.valueTokenizer()
	lookupEnv := p.lookupEnvFn()

	p.markCommandLine(argv, ledger)

	envTokens, err := p.resolveEnv(keyMapper, tokenizer, lookupEnv, ledger)
	if err != nil {
		return nil, nil, err
	}

	fileTokens, err := p.resolveFile(keyMapper, tokenizer, lookupEnv, ledger)
	if err != nil {
		return nil, nil, err
	}

	for _, opt := range p.opts {
		if !ledger.resolved(opt.Name) {
			ledger.record(opt.Name, Resolution{Source: SourceDefault})
		}
	}

	// Synthesized tokens follow argv, except that a bare "--" terminator
	// ends flag parsing in the engine, so they are spliced in ahead of it.
	head := len(argv)
	for i, tok := range argv {
		if tok == "--" {
			head = i
			break
		}
	}
	stream := make([]string, 0, len(argv)+len(envTokens)+len(fileTokens))
	stream = append(stream, argv[:head]...)
	stream = append(stream, envTokens...)
	stream = append(stream, fileTokens...)
	stream = append(stream, argv[head:]...)

	p.ledger = ledger
	return stream, ledger, nil
}

// markCommandLine records every option already present in argv, without
// altering argv. Value capture mirrors the engine's own consumption rules
// (inline "=", shorthand clusters, next-token values); tokens after a
// bare "--" are positional and are not scanned.
func (p *Parser) markCommandLine(argv []string, ledger *Ledger) {
	found := make(map[string][]string)
	var order []string
	note := func(opt *Option, values ...string) {
		if _, seen := found[opt.Name]; !seen {
			order = append(order, opt.Name)
			found[opt.Name] = []string{}
		}
		found[opt.Name] = append(found[opt.Name], values...)
	}

	for i := 0; i < len(argv); i++ {
		tok := argv[i]
		if tok == "--" {
			break
		}
		switch {
		case strings.HasPrefix(tok, "--"):
			name, inline, hasInline := splitInline(tok[2:])
			opt := p.lookupLong(name)
			if opt == nil {
				continue
			}
			switch {
			case hasInline:
				note(opt, inline)
			case opt.Kind == KindFlag:
				note(opt, "true")
			case i+1 < len(argv):
				i++
				note(opt, argv[i])
			default:
				note(opt)
			}
		case strings.HasPrefix(tok, "-") && len(tok) > 1:
			rest := tok[1:]
			for rest != "" {
				opt := p.byShort[rest[:1]]
				if opt == nil {
					// unknown shorthand, leave it for the engine to report
					break
				}
				if len(rest) > 2 && rest[1] == '=' {
					note(opt, rest[2:])
					rest = ""
					break
				}
				if opt.Kind == KindFlag {
					note(opt, "true")
					rest = rest[1:]
					continue
				}
				if len(rest) > 1 {
					note(opt, rest[1:])
				} else if i+1 < len(argv) {
					i++
					note(opt, argv[i])
				} else {
					note(opt)
				}
				rest = ""
			}
		}
	}

	for _, name := range order {
		ledger.record(name, Resolution{Source: SourceCommandLine, Values: found[name]})
	}
}

func splitInline(s string) (name, inline string, ok bool) {
	if i := strings.IndexByte(s, '='); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, "", false
}

// resolveEnv synthesizes tokens for unresolved options whose environment
// variable is set. Env values go through the same special-value
// interpretation as config values: "true"/"false" for flags, bracketed
// lists for list options.
func (p *Parser) resolveEnv(km KeyMapper, tz Tokenizer, lookup func(string) (string, bool), ledger *Ledger) ([]string, error) {
	var tokens []string
	for _, opt := range p.opts {
		if ledger.resolved(opt.Name) {
			continue
		}
		envVar := km.EnvVarName(opt)
		if envVar == "" {
			continue
		}
		raw, ok := lookup(envVar)
		if !ok {
			continue
		}
		v := interpretRaw(raw)
		toks, err := tz.Tokens(opt, v)
		if err != nil {
			return nil, fmt.Errorf("environment variable %s: %w", envVar, err)
		}
		if len(toks) == 0 {
			continue
		}
		tokens = append(tokens, toks...)
		ledger.record(opt.Name, Resolution{Source: SourceEnv, Values: v.strings(), Origin: envVar})
	}
	return tokens, nil
}

// interpretRaw tags an environment value the way the default file parser
// tags config values.
func interpretRaw(raw string) Value {
	if elems, ok := bracketList(strings.TrimSpace(raw)); ok {
		return listValue(elems)
	}
	return scalarValue(raw)
}

// resolveFile locates and parses the config file, then synthesizes tokens
// for entries whose options are still unresolved. Within one file, later
// duplicate keys override earlier ones.
func (p *Parser) resolveFile(km KeyMapper, tz Tokenizer, lookup func(string) (string, bool), ledger *Ledger) ([]string, error) {
	path, origin, err := p.locateConfigFile(km, lookup, ledger)
	if err != nil || path == "" {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			if origin != "" {
				return nil, &MissingFileError{Path: path, Origin: origin}
			}
			return nil, nil
		}
		return nil, fmt.Errorf("opening config file %s: %w", path, err)
	}
	defer f.Close()

	entries, err := p.fileParser().Parse(f, path)
	if err != nil {
		return nil, err
	}
	entries = dedupeLastWins(entries)

	index := p.configKeyIndex(km)
	var tokens []string
	for _, entry := range entries {
		opt := index[entry.Key]
		if opt == nil {
			keyErr := &UnknownKeyError{Key: entry.Key, Path: path, Line: entry.Line}
			if p.OnUnknownKey == UnknownKeyWarn {
				fmt.Fprintf(p.errOut(), "%s: warning: %v\n", p.name, keyErr)
				continue
			}
			return nil, keyErr
		}
		if ledger.resolved(opt.Name) {
			continue
		}
		toks, err := tz.Tokens(opt, entry.Value)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, entry.Line, err)
		}
		if len(toks) == 0 {
			continue
		}
		tokens = append(tokens, toks...)
		ledger.record(opt.Name, Resolution{Source: SourceFile, Values: entry.Value.strings(), Origin: path})
	}
	return tokens, nil
}

// locateConfigFile picks the file to read: a path designated through the
// config-file option (on the command line or via its env var) wins and
// must exist; otherwise the first existing path from DefaultPaths is used,
// and none existing means no config file at all.
func (p *Parser) locateConfigFile(km KeyMapper, lookup func(string) (string, bool), ledger *Ledger) (path, origin string, err error) {
	if opt := p.configFileOption(); opt != nil {
		if r, ok := ledger.Lookup(opt.Name); ok && len(r.Values) > 0 {
			origin := opt.Flag()
			if r.Source == SourceEnv {
				origin = r.Origin
			}
			return r.Values[len(r.Values)-1], origin, nil
		}
		if envVar := km.EnvVarName(opt); envVar != "" {
			if v, ok := lookup(envVar); ok && strings.TrimSpace(v) != "" {
				return v, envVar, nil
			}
		}
	}
	for _, candidate := range p.DefaultPaths {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, "", nil
		}
	}
	return "", "", nil
}

// configKeyIndex maps every acceptable config key to its option. The first
// declaration wins on key collisions.
func (p *Parser) configKeyIndex(km KeyMapper) map[string]*Option {
	index := make(map[string]*Option)
	for _, opt := range p.opts {
		for _, key := range km.ConfigKeys(opt) {
			if _, taken := index[key]; !taken {
				index[key] = opt
			}
		}
	}
	return index
}

// dedupeLastWins collapses duplicate keys: the last value wins but keeps
// the first occurrence's position in file order.
func dedupeLastWins(entries []Entry) []Entry {
	index := make(map[string]int, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if i, seen := index[entry.Key]; seen {
			out[i] = entry
			continue
		}
		index[entry.Key] = len(out)
		out = append(out, entry)
	}
	return out
}
