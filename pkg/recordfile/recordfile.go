// Package recordfile loads products, users and orders from YAML or JSON files.
//
// A file holds either one record or a list of records. Every record is
// validated against an embedded JSON Schema before it is decoded, so a bad
// import is rejected as a whole with each failing field named.
package recordfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	types "github.com/getmockd/storeadmin/pkg/api/types"
)

// ErrNoMatch is returned when a pattern matches no files.
var ErrNoMatch = errors.New("no files match")

// ErrEmpty is returned when the matched files hold no records.
var ErrEmpty = errors.New("no records found")

// Expand resolves patterns to file paths. Patterns support ** for recursive
// matching. Each pattern must match at least one file; duplicates are
// dropped and the order of first appearance is kept.
func Expand(patterns ...string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoMatch, pattern)
		}
		slices.Sort(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}

// LoadProducts loads and validates products from the files matching patterns.
func LoadProducts(patterns ...string) ([]types.Product, error) {
	return load[types.Product](KindProduct, patterns)
}

// LoadUsers loads and validates users from the files matching patterns.
func LoadUsers(patterns ...string) ([]types.User, error) {
	return load[types.User](KindUser, patterns)
}

// LoadOrders loads and validates orders from the files matching patterns.
func LoadOrders(patterns ...string) ([]types.Order, error) {
	return load[types.Order](KindOrder, patterns)
}

func load[R any](kind Kind, patterns []string) ([]R, error) {
	files, err := Expand(patterns...)
	if err != nil {
		return nil, err
	}

	var out []R
	for _, file := range files {
		records, err := readFile[R](kind, file)
		if err != nil {
			return nil, err
		}
		out = append(out, records...)
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

func readFile[R any](kind Kind, path string) ([]R, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := decodeDocument(path, data)
	if err != nil {
		return nil, err
	}

	var items []any
	switch v := doc.(type) {
	case nil:
		return nil, nil
	case []any:
		items = v
	default:
		items = []any{v}
	}

	out := make([]R, 0, len(items))
	for i, item := range items {
		if problems, err := Validate(kind, item); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		} else if len(problems) > 0 {
			return nil, &ValidationError{File: path, Index: i, Kind: kind, Problems: problems}
		}

		raw, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("loading %s: record %d: %w", path, i, err)
		}
		var rec R
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("loading %s: record %d: %w", path, i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// decodeDocument parses YAML or JSON by extension into plain JSON values
// (map[string]any, []any, json.Number, string, bool, nil). Numbers stay
// json.Number so large identifiers keep every digit.
func decodeDocument(path string, data []byte) (any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		doc, err := decodeJSON(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return doc, nil
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		// Round-trip through JSON so numbers and maps have the same shapes
		// as a JSON file.
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if doc, err = decodeJSON(raw); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("unsupported file type %q for %s (use .json, .yaml or .yml)", filepath.Ext(path), path)
	}
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after top-level value")
	}
	return doc, nil
}
