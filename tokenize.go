package configargparse

import "strings"

// Tokenizer converts one option/value pair into zero or more command-line
// tokens, equivalent to what the user would have typed. Zero tokens means
// the value leaves the option unresolved (the engine default applies).
type Tokenizer interface {
	Tokens(opt *Option, v Value) ([]string, error)
}

// DefaultTokenizer applies the special-value rules: flag options accept
// only boolean values and emit the bare flag; list options emit one
// flag/element pair per element in source order; scalar options emit the
// flag followed by the single value.
type DefaultTokenizer struct{}

func (DefaultTokenizer) Tokens(opt *Option, v Value) ([]string, error) {
	flag := opt.Flag()
	switch opt.Kind {
	case KindFlag:
		switch v.Kind {
		case ValueBoolTrue:
			return []string{flag}, nil
		case ValueScalar:
			if strings.EqualFold(v.Scalar, "true") {
				return []string{flag}, nil
			}
			if strings.EqualFold(v.Scalar, "false") {
				// A false flag is indistinguishable from an unset one:
				// no token is emitted and the engine default applies.
				return nil, nil
			}
			return nil, &ArityMismatchError{Option: opt.Name, Value: v.Scalar}
		default:
			return nil, &ArityMismatchError{Option: opt.Name, Value: "[" + strings.Join(v.List, ", ") + "]"}
		}

	case KindList:
		switch v.Kind {
		case ValueList:
			tokens := make([]string, 0, 2*len(v.List))
			for _, elem := range v.List {
				tokens = append(tokens, flag, elem)
			}
			return tokens, nil
		case ValueBoolTrue:
			return []string{flag, "true"}, nil
		default:
			return []string{flag, v.Scalar}, nil
		}

	default: // KindScalar
		switch v.Kind {
		case ValueScalar:
			return []string{flag, v.Scalar}, nil
		case ValueBoolTrue:
			return []string{flag, "true"}, nil
		default:
			return nil, &ArityMismatchError{Option: opt.Name, Value: "[" + strings.Join(v.List, ", ") + "]"}
		}
	}
}
