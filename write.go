package configargparse

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
)

// WriteConfig serializes the options changed by the most recent parse into
// DefaultParser syntax and writes them to path atomically. Feeding the
// written file back through the resolver reproduces the same values.
// The config-file option itself is never written out.
func (p *Parser) WriteConfig(path string) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s configuration\n", p.name)

	for _, opt := range p.opts {
		if opt.IsConfigFile {
			continue
		}
		f := p.fs.Lookup(opt.Name)
		if f == nil || !f.Changed {
			continue
		}
		switch opt.Kind {
		case KindFlag:
			if f.Value.String() == "true" {
				fmt.Fprintf(&buf, "%s = true\n", opt.Name)
			}
		case KindList:
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				fmt.Fprintf(&buf, "%s = [%s]\n", opt.Name, strings.Join(sv.GetSlice(), ", "))
			} else {
				fmt.Fprintf(&buf, "%s = %s\n", opt.Name, f.Value.String())
			}
		default:
			fmt.Fprintf(&buf, "%s = %s\n", opt.Name, quoteValue(f.Value.String()))
		}
	}

	return atomicWriteFile(path, buf.Bytes())
}

// quoteValue wraps a scalar in quotes when the default grammar would
// misread it bare: empty values, values holding a comment marker,
// surrounding whitespace, bracket-list shapes, and already-quoted text.
func quoteValue(s string) string {
	plain := s != "" &&
		s == strings.TrimSpace(s) &&
		!strings.ContainsAny(s, "#;") &&
		!(s[0] == '[' && s[len(s)-1] == ']') &&
		!(len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0])
	if plain {
		return s
	}
	if strings.Contains(s, `"`) {
		return "'" + s + "'"
	}
	return `"` + s + `"`
}

// atomicWriteFile writes data through a temp file in the target directory
// and renames it into place.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // no-op once the rename succeeds

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
