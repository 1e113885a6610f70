// Package configargparse resolves command-line options from multiple
// sources with strict precedence: command-line arguments, environment
// variables, config-file entries, and hard-coded defaults.
//
// Instead of merging typed values, the package synthesizes command-line
// tokens for every option supplied by a lower-precedence source and hands
// one combined token stream to a spf13/pflag FlagSet, so all type
// conversion, choice validation, and default handling behave exactly as
// if the user had typed the values directly.
//
// Features:
//   - One declaration per option: flags, environment variable, config key
//   - Precedence enforced by omission, never by later-wins overwrite
//   - Loosely structured ini/yaml-ish config syntax, plus YAML and TOML
//     file parsers as drop-in alternatives
//   - Source ledger recording which source satisfied each option
//   - Process-wide named parser registry for shared configuration surfaces
//   - Write-back of the effective configuration to a file
//
// Quick Start:
//
//	p := configargparse.New("myapp")
//	host := p.String("host", "H", "localhost", "MYAPP_HOST", "server host")
//	verbose := p.Bool("verbose", "v", false, "", "enable verbose output")
//	fruit := p.StringSlice("fruit", "", nil, "", "fruits to buy")
//	p.ConfigFileFlag("config", "c", "MYAPP_CONFIG", "config file path")
//	p.DefaultPaths = configargparse.DefaultConfigPaths("myapp")
//
//	ledger, err := p.Parse(os.Args[1:])
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(*host, *verbose, *fruit)
//	fmt.Println(ledger.Report())
//
// Precedence (highest to lowest):
//  1. Command-line arguments (--host example.com)
//  2. Environment variables (MYAPP_HOST=example.com)
//  3. Config file (host = example.com)
//  4. Default values (applied by the engine when no token is present)
//
// Config file syntax accepted by the default parser:
//
//	# comment
//	[section]              ; section names carry no semantics
//	host = example.com
//	verbose = true         ; flags accept only true/false
//	fruit = [apple, orange, lemon]
//	debug                  ; bare key implies true
//
// Concurrency:
// A parse invocation is single-threaded and synchronous. Construct and
// parse before spawning goroutines; nothing is mutated after the parse
// call returns.
package configargparse
