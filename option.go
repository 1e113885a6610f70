package configargparse

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// Kind classifies an option's arity.
type Kind int

const (
	// KindScalar options take exactly one value token.
	KindScalar Kind = iota
	// KindFlag options are boolean switches that take no value token.
	KindFlag
	// KindList options may be repeated, once per element.
	KindList
)

// Option declares a single configurable value: its command-line flags, its
// arity, and the environment variable that may supply it. Options are
// immutable for the lifetime of a parse.
type Option struct {
	// Name is the primary long flag, without the leading dashes.
	Name string

	// Shorthand is an optional single-letter flag. Shorthand spellings are
	// never eligible for config-file or environment resolution.
	Shorthand string

	// Aliases are alternate long flags. Each one is accepted on the command
	// line and as a config-file key.
	Aliases []string

	Kind Kind

	// EnvVar is the environment variable consulted when the option is
	// absent from the command line. Empty means not settable from the
	// environment unless the parser derives a name (see AutoEnvVarPrefix).
	EnvVar string

	// IsConfigFile marks the option whose value designates the config file
	// path. At most one option per parser may set it.
	IsConfigFile bool

	Usage string
}

// Flag returns the primary command-line token for the option.
func (o *Option) Flag() string { return "--" + o.Name }

// UnknownKeyMode controls how the resolver treats config keys that map to
// no known long-form option.
type UnknownKeyMode int

const (
	// UnknownKeyFail aborts resolution with an UnknownKeyError.
	UnknownKeyFail UnknownKeyMode = iota
	// UnknownKeyWarn writes a warning to ErrOut and skips the entry,
	// allowing config files to stay ahead of (or behind) the binary.
	UnknownKeyWarn
)

// Parser resolves each declared option from four sources with strict
// precedence, command line > environment > config file > default, by
// synthesizing command-line tokens for values found in lower-precedence
// sources and handing one combined token stream to the underlying
// pflag engine.
//
// The zero values of the exported fields select the default behavior;
// set them before the first call to Parse or Resolve.
type Parser struct {
	name string
	fs   *pflag.FlagSet

	opts    []*Option
	byName  map[string]*Option
	byAlias map[string]*Option
	byShort map[string]*Option

	// FileParser parses config-file text. Defaults to DefaultParser.
	FileParser FileParser

	// KeyMapper derives config keys and environment variable names.
	// Defaults to DefaultKeyMapper.
	KeyMapper KeyMapper

	// Tokenizer converts resolved values into command-line tokens.
	// Defaults to DefaultTokenizer.
	Tokenizer Tokenizer

	// DefaultPaths lists config file paths tried in order when no file is
	// designated explicitly. The first existing path is used; none existing
	// is not an error.
	DefaultPaths []string

	// OnUnknownKey selects failure or warning for unrecognized config keys.
	OnUnknownKey UnknownKeyMode

	// AutoEnvVarPrefix, when non-empty, derives an environment variable
	// name (prefix + upper-cased flag name) for every option that does not
	// declare one.
	AutoEnvVarPrefix string

	// LookupEnv is the environment snapshot consulted during resolution.
	// Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// ErrOut receives unknown-key warnings. Defaults to os.Stderr.
	ErrOut io.Writer

	ledger *Ledger
}

// New creates a Parser backed by a pflag.FlagSet with the given name and
// ContinueOnError error handling.
func New(name string) *Parser {
	p := &Parser{
		name:    name,
		byName:  make(map[string]*Option),
		byAlias: make(map[string]*Option),
		byShort: make(map[string]*Option),
	}
	p.fs = pflag.NewFlagSet(name, pflag.ContinueOnError)
	p.fs.SetNormalizeFunc(p.normalize)
	return p
}

// FlagSet exposes the underlying engine, e.g. for usage output or access
// to parsed positional arguments.
func (p *Parser) FlagSet() *pflag.FlagSet { return p.fs }

// Name returns the parser's name.
func (p *Parser) Name() string { return p.name }

// normalize folds alias spellings into the primary flag name so the engine
// accepts every declared long flag.
func (p *Parser) normalize(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if opt, ok := p.byAlias[name]; ok {
		return pflag.NormalizedName(opt.Name)
	}
	return pflag.NormalizedName(name)
}

// AddOption declares an option that is already registered on the engine's
// FlagSet, or registers a fresh one with a zero default. Most callers use
// the typed helpers (String, Bool, StringSlice, ...) instead.
func (p *Parser) AddOption(opt Option) error {
	if opt.Name == "" {
		return fmt.Errorf("option must have a long flag name")
	}
	if strings.HasPrefix(opt.Name, "-") {
		return fmt.Errorf("option name %q must not include the dash prefix", opt.Name)
	}
	if _, dup := p.byName[opt.Name]; dup {
		return fmt.Errorf("option --%s already declared", opt.Name)
	}
	if opt.IsConfigFile {
		if opt.Kind != KindScalar {
			return fmt.Errorf("config file option --%s must be scalar", opt.Name)
		}
		for _, o := range p.opts {
			if o.IsConfigFile {
				return fmt.Errorf("options --%s and --%s both marked as config file", o.Name, opt.Name)
			}
		}
	}
	if p.fs.Lookup(opt.Name) == nil {
		switch opt.Kind {
		case KindFlag:
			p.fs.BoolP(opt.Name, opt.Shorthand, false, opt.Usage)
		case KindList:
			p.fs.StringArrayP(opt.Name, opt.Shorthand, nil, opt.Usage)
		default:
			p.fs.StringP(opt.Name, opt.Shorthand, "", opt.Usage)
		}
	}
	o := opt
	p.opts = append(p.opts, &o)
	p.byName[o.Name] = &o
	for _, alias := range o.Aliases {
		p.byAlias[strings.TrimPrefix(alias, "--")] = &o
	}
	if o.Shorthand != "" {
		p.byShort[o.Shorthand] = &o
	}
	return nil
}

func (p *Parser) mustAdd(opt Option) {
	if err := p.AddOption(opt); err != nil {
		panic(err.Error())
	}
}

// String declares a scalar option and returns a pointer to its value.
// envVar may be empty.
func (p *Parser) String(name, shorthand, value, envVar, usage string) *string {
	ptr := p.fs.StringP(name, shorthand, value, usage)
	p.mustAdd(Option{Name: name, Shorthand: shorthand, Kind: KindScalar, EnvVar: envVar, Usage: usage})
	return ptr
}

// Int declares a scalar integer option and returns a pointer to its value.
func (p *Parser) Int(name, shorthand string, value int, envVar, usage string) *int {
	ptr := p.fs.IntP(name, shorthand, value, usage)
	p.mustAdd(Option{Name: name, Shorthand: shorthand, Kind: KindScalar, EnvVar: envVar, Usage: usage})
	return ptr
}

// Bool declares a boolean-flag option and returns a pointer to its value.
func (p *Parser) Bool(name, shorthand string, value bool, envVar, usage string) *bool {
	ptr := p.fs.BoolP(name, shorthand, value, usage)
	p.mustAdd(Option{Name: name, Shorthand: shorthand, Kind: KindFlag, EnvVar: envVar, Usage: usage})
	return ptr
}

// StringSlice declares a list option. Each occurrence of the flag appends
// one element, so synthesized token streams preserve element order.
func (p *Parser) StringSlice(name, shorthand string, value []string, envVar, usage string) *[]string {
	ptr := p.fs.StringArrayP(name, shorthand, value, usage)
	p.mustAdd(Option{Name: name, Shorthand: shorthand, Kind: KindList, EnvVar: envVar, Usage: usage})
	return ptr
}

// ConfigFileFlag declares the option whose value designates the config
// file to read. A path supplied through it (or through envVar) must exist;
// paths from DefaultPaths are tried silently.
func (p *Parser) ConfigFileFlag(name, shorthand, envVar, usage string) *string {
	ptr := p.fs.StringP(name, shorthand, "", usage)
	p.mustAdd(Option{Name: name, Shorthand: shorthand, Kind: KindScalar, EnvVar: envVar, IsConfigFile: true, Usage: usage})
	return ptr
}

// Options returns the declared options in declaration order.
func (p *Parser) Options() []*Option {
	out := make([]*Option, len(p.opts))
	copy(out, p.opts)
	return out
}

func (p *Parser) configFileOption() *Option {
	for _, opt := range p.opts {
		if opt.IsConfigFile {
			return opt
		}
	}
	return nil
}

func (p *Parser) lookupLong(name string) *Option {
	if opt, ok := p.byName[name]; ok {
		return opt
	}
	return p.byAlias[name]
}

func (p *Parser) fileParser() FileParser {
	if p.FileParser != nil {
		return p.FileParser
	}
	return DefaultParser{}
}

func (p *Parser) keyMapper() KeyMapper {
	if p.KeyMapper != nil {
		return p.KeyMapper
	}
	return DefaultKeyMapper{AutoEnvVarPrefix: p.AutoEnvVarPrefix}
}

func (p *Parser) valueTokenizer() Tokenizer {
	if p.Tokenizer != nil {
		return p.Tokenizer
	}
	return DefaultTokenizer{}
}

func (p *Parser) lookupEnvFn() func(string) (string, bool) {
	if p.LookupEnv != nil {
		return p.LookupEnv
	}
	return os.LookupEnv
}

func (p *Parser) errOut() io.Writer {
	if p.ErrOut != nil {
		return p.ErrOut
	}
	return os.Stderr
}
