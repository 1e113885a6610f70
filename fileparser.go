package configargparse

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ValueKind discriminates the shapes a config value can take.
type ValueKind int

const (
	// ValueScalar is a single string value.
	ValueScalar ValueKind = iota
	// ValueBoolTrue marks a bare key with no value, implying true.
	ValueBoolTrue
	// ValueList is an ordered sequence of string elements.
	ValueList
)

// Value is the tagged result of parsing one config entry. It records the
// shape the source expressed, not the option's arity; the two are checked
// against each other later, in the tokenizer.
type Value struct {
	Kind   ValueKind
	Scalar string
	List   []string
}

func scalarValue(s string) Value     { return Value{Kind: ValueScalar, Scalar: s} }
func boolTrueValue() Value           { return Value{Kind: ValueBoolTrue} }
func listValue(items []string) Value { return Value{Kind: ValueList, List: items} }

// strings returns the literal value(s) for ledger reporting.
func (v Value) strings() []string {
	switch v.Kind {
	case ValueBoolTrue:
		return []string{"true"}
	case ValueList:
		return append([]string(nil), v.List...)
	default:
		return []string{v.Scalar}
	}
}

// Entry is one key/value pair from a config file, in file order.
type Entry struct {
	Key   string
	Value Value
	Line  int
}

// FileParser turns the full text of one config file into an ordered
// sequence of entries. Parsers have no knowledge of which keys name valid
// options; that check happens in the resolver.
type FileParser interface {
	// Parse reads r to the end. path is used only for error reporting.
	Parse(r io.Reader, path string) ([]Entry, error)
}

// DefaultParser reads a loosely structured ini/yaml-ish syntax:
//
//	# comment          ; also a comment
//	---                (document markers and dashed dividers are skipped)
//	[section]          (section headers carry no semantics)
//	key = value        key: value       key value
//	flag               (bare key, implied true)
//	fruit = [apple, orange, lemon]
//
// Values are trimmed of surrounding whitespace and matching quotes, and a
// trailing " # ..." or " ; ..." comment is stripped from unquoted values.
type DefaultParser struct{}

var sectionHeader = regexp.MustCompile(`^\[[A-Za-z_][A-Za-z0-9_.-]*\]$`)

func (DefaultParser) Parse(r io.Reader, path string) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' || text[0] == ';' {
			continue
		}
		if strings.Trim(text, "-") == "" {
			// "---" document markers and "-----" dividers
			continue
		}
		if sectionHeader.MatchString(text) {
			continue
		}

		entry, err := parseLine(text, path, line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return entries, nil
}

// parseLine splits one non-comment line into a key and a tagged value.
// The key ends at the first of '=', ':', or whitespace; an explicit
// separator after the key is consumed along with surrounding whitespace.
func parseLine(text, path string, line int) (Entry, error) {
	syntaxErr := func() error {
		return &SyntaxError{Path: path, Line: line, Text: fmt.Sprintf("cannot parse line %q", text)}
	}

	i := strings.IndexAny(text, "=: \t")
	if i < 0 {
		key := strings.TrimPrefix(text, "--")
		if key == "" {
			return Entry{}, syntaxErr()
		}
		return Entry{Key: key, Value: boolTrueValue(), Line: line}, nil
	}

	key := strings.TrimPrefix(text[:i], "--")
	if key == "" {
		return Entry{}, syntaxErr()
	}

	rest := strings.TrimSpace(text[i:])
	explicitSep := false
	if rest != "" && (rest[0] == '=' || rest[0] == ':') {
		explicitSep = true
		rest = strings.TrimSpace(rest[1:])
	}

	if quoted, ok := unquote(rest); ok {
		return Entry{Key: key, Value: scalarValue(quoted), Line: line}, nil
	}

	rest = strings.TrimSpace(stripInlineComment(rest))
	switch {
	case rest == "" && explicitSep:
		// a separator with nothing after it ("key =") is malformed
		return Entry{}, syntaxErr()
	case rest == "":
		return Entry{Key: key, Value: boolTrueValue(), Line: line}, nil
	}
	if quoted, ok := unquote(rest); ok {
		return Entry{Key: key, Value: scalarValue(quoted), Line: line}, nil
	}

	if elems, ok := bracketList(rest); ok {
		return Entry{Key: key, Value: listValue(elems), Line: line}, nil
	}
	return Entry{Key: key, Value: scalarValue(rest), Line: line}, nil
}

// unquote strips one pair of matching surrounding quotes.
func unquote(s string) (string, bool) {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1], true
	}
	return s, false
}

// stripInlineComment removes a trailing comment introduced by '#' or ';'
// at the start of the value or after whitespace.
func stripInlineComment(s string) string {
	if s != "" && (s[0] == '#' || s[0] == ';') {
		return ""
	}
	for i := 1; i < len(s); i++ {
		if (s[i] == '#' || s[i] == ';') && (s[i-1] == ' ' || s[i-1] == '\t') {
			return s[:i]
		}
	}
	return s
}

// bracketList interprets "[a, b, c]" as an ordered list of trimmed
// elements. "[]" is an empty list.
func bracketList(s string) ([]string, bool) {
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, false
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return []string{}, true
	}
	parts := strings.Split(inner, ",")
	elems := make([]string, len(parts))
	for i, part := range parts {
		elems[i] = strings.TrimSpace(part)
	}
	return elems, true
}

// YAMLParser reads flat YAML documents: a single top-level mapping whose
// values are scalars or sequences of scalars. Nested mappings are rejected,
// since config values are flat key-to-scalar or key-to-list only. Document
// order and line numbers are preserved.
type YAMLParser struct{}

func (YAMLParser) Parse(r io.Reader, path string) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &SyntaxError{Path: path, Line: 0, Text: err.Error()}
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, &SyntaxError{Path: path, Line: doc.Line, Text: "top-level YAML value must be a mapping"}
	}

	var entries []Entry
	for i := 0; i+1 < len(doc.Content); i += 2 {
		keyNode, valNode := doc.Content[i], doc.Content[i+1]
		key := strings.TrimPrefix(keyNode.Value, "--")
		switch valNode.Kind {
		case yaml.ScalarNode:
			entries = append(entries, Entry{Key: key, Value: scalarValue(valNode.Value), Line: keyNode.Line})
		case yaml.SequenceNode:
			elems := make([]string, 0, len(valNode.Content))
			for _, elem := range valNode.Content {
				if elem.Kind != yaml.ScalarNode {
					return nil, &SyntaxError{Path: path, Line: elem.Line, Text: fmt.Sprintf("key %q: list elements must be scalars", key)}
				}
				elems = append(elems, elem.Value)
			}
			entries = append(entries, Entry{Key: key, Value: listValue(elems), Line: keyNode.Line})
		default:
			return nil, &SyntaxError{Path: path, Line: valNode.Line, Text: fmt.Sprintf("key %q: nested values are not supported", key)}
		}
	}
	return entries, nil
}

// TOMLParser reads TOML files. Tables are flattened into one namespace
// (section names carry no semantics, matching DefaultParser's treatment
// of ini sections); values nested deeper than one table level, and
// non-scalar array elements, are rejected. Key order follows the file.
type TOMLParser struct{}

func (TOMLParser) Parse(r io.Reader, path string) ([]Entry, error) {
	var data map[string]any
	md, err := toml.NewDecoder(r).Decode(&data)
	if err != nil {
		return nil, &SyntaxError{Path: path, Line: 0, Text: err.Error()}
	}

	var entries []Entry
	for _, key := range md.Keys() {
		value := tomlLookup(data, key)
		if _, isTable := value.(map[string]any); isTable {
			continue
		}
		entry, err := tomlEntry(strings.TrimPrefix(key[len(key)-1], "--"), value)
		if err != nil {
			return nil, &SyntaxError{Path: path, Line: 0, Text: fmt.Sprintf("key %q: %v", key.String(), err)}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func tomlLookup(data map[string]any, key toml.Key) any {
	var value any = data
	for _, segment := range key {
		table, ok := value.(map[string]any)
		if !ok {
			return nil
		}
		value = table[segment]
	}
	return value
}

func tomlEntry(key string, value any) (Entry, error) {
	if items, ok := value.([]any); ok {
		elems := make([]string, len(items))
		for i, item := range items {
			s, err := tomlScalar(item)
			if err != nil {
				return Entry{}, err
			}
			elems[i] = s
		}
		return Entry{Key: key, Value: listValue(elems)}, nil
	}
	s, err := tomlScalar(value)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Key: key, Value: scalarValue(s)}, nil
}

func tomlScalar(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", value)
	}
}
