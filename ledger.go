package configargparse

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Source identifies which origin satisfied an option during a parse.
type Source string

const (
	SourceCommandLine Source = "command-line"
	SourceEnv         Source = "environment"
	SourceFile        Source = "config-file"
	SourceDefault     Source = "default"
)

// Resolution records the winning source for a single option.
type Resolution struct {
	Source Source
	Values []string // literal value(s) used; empty for default
	Origin string   // file path or env var name, when applicable
}

// Ledger records, per option, which source satisfied it during one parse
// call. It is built once per Resolve, read-only afterward, and replaced by
// the next call. Exactly one source is attributed per option per parse.
type Ledger struct {
	order       []string
	resolutions map[string]Resolution
}

func newLedger() *Ledger {
	return &Ledger{resolutions: make(map[string]Resolution)}
}

func (l *Ledger) record(name string, r Resolution) {
	if _, done := l.resolutions[name]; done {
		return
	}
	l.order = append(l.order, name)
	l.resolutions[name] = r
}

func (l *Ledger) resolved(name string) bool {
	_, ok := l.resolutions[name]
	return ok
}

// Lookup returns the resolution for an option by its long flag name.
func (l *Ledger) Lookup(name string) (Resolution, bool) {
	r, ok := l.resolutions[name]
	return r, ok
}

// Options returns the option names in resolution order: command-line
// resolutions first, then environment, config file, and defaults.
func (l *Ledger) Options() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Report renders a human-readable audit table listing, per option, the
// winning source, the literal value(s) used, and where they came from.
func (l *Ledger) Report() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Option", "Source", "Value", "Origin"})
	for _, name := range l.order {
		r := l.resolutions[name]
		tw.AppendRow(table.Row{"--" + name, string(r.Source), strings.Join(r.Values, ", "), r.Origin})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
