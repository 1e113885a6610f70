package configargparse

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
)

// Scan decodes the engine's parsed values into the target struct pointer
// using the "flag" struct tag. Values are decoded weakly typed, so string
// flag values convert to the target field types, with hooks for durations
// and comma-separated slices.
func (p *Parser) Scan(target any) error {
	values := make(map[string]any, len(p.opts))
	for _, opt := range p.opts {
		f := p.fs.Lookup(opt.Name)
		if f == nil {
			continue
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			values[opt.Name] = sv.GetSlice()
			continue
		}
		values[opt.Name] = f.Value.String()
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "flag",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(values); err != nil {
		return fmt.Errorf("failed to scan options into %T: %w", target, err)
	}

	return nil
}
