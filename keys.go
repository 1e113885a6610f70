package configargparse

import "strings"

// KeyMapper derives, for one option, the set of config-file keys that may
// supply it and the environment variable consulted for it. Implementations
// must be pure functions of the option: no I/O, no shared state.
type KeyMapper interface {
	// ConfigKeys returns the keys under which the option may appear in a
	// config file. An empty result means the option is not config-settable.
	ConfigKeys(opt *Option) []string

	// EnvVarName returns the environment variable name for the option, or
	// "" if it is not settable from the environment.
	EnvVarName(opt *Option) string
}

// DefaultKeyMapper maps every long flag (primary name and aliases) to a
// config key with the dash marker stripped, and excludes shorthand
// spellings. The environment variable is the one declared on the option,
// or derived from AutoEnvVarPrefix when none is declared.
type DefaultKeyMapper struct {
	AutoEnvVarPrefix string
}

var envNameReplacer = strings.NewReplacer("-", "_", ".", "_")

func (m DefaultKeyMapper) ConfigKeys(opt *Option) []string {
	keys := make([]string, 0, 1+len(opt.Aliases))
	if opt.Name != "" {
		keys = append(keys, strings.TrimPrefix(opt.Name, "--"))
	}
	for _, alias := range opt.Aliases {
		keys = append(keys, strings.TrimPrefix(alias, "--"))
	}
	return keys
}

func (m DefaultKeyMapper) EnvVarName(opt *Option) string {
	if opt.EnvVar != "" {
		return opt.EnvVar
	}
	if m.AutoEnvVarPrefix == "" {
		return ""
	}
	return m.AutoEnvVarPrefix + strings.ToUpper(envNameReplacer.Replace(opt.Name))
}
