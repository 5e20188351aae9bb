package recordfile

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Kind names a record type with an embedded schema.
type Kind string

// Record kinds.
const (
	KindProduct Kind = "product"
	KindUser    Kind = "user"
	KindOrder   Kind = "order"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	schemaMu    sync.Mutex
	schemaCache = map[Kind]*jsonschema.Schema{}
)

// Problem is a single schema violation.
type Problem struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (p Problem) String() string {
	if p.Field == "" {
		return p.Message
	}
	return p.Field + ": " + p.Message
}

// ValidationError reports every schema violation of one record.
type ValidationError struct {
	File     string
	Index    int
	Kind     Kind
	Problems []Problem
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.String()
	}
	if e.File == "" {
		return fmt.Sprintf("invalid %s: %s", e.Kind, strings.Join(msgs, "; "))
	}
	return fmt.Sprintf("%s: %s %d is invalid: %s", e.File, e.Kind, e.Index, strings.Join(msgs, "; "))
}

// Schema returns the compiled schema for kind.
func Schema(kind Kind) (*jsonschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	if s, ok := schemaCache[kind]; ok {
		return s, nil
	}

	name := string(kind) + ".json"
	data, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		return nil, fmt.Errorf("no schema for %q", kind)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	s, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s schema: %w", kind, err)
	}
	schemaCache[kind] = s
	return s, nil
}

// Validate checks a decoded JSON value against the schema for kind. It
// returns the violations, or an error if the schema itself is unusable.
func Validate(kind Kind, v any) ([]Problem, error) {
	s, err := Schema(kind)
	if err != nil {
		return nil, err
	}

	err = s.Validate(v)
	if err == nil {
		return nil, nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return nil, err
	}

	var problems []Problem
	collectProblems(verr, &problems)
	sort.SliceStable(problems, func(i, j int) bool { return problems[i].Field < problems[j].Field })
	return problems, nil
}

// ValidateRecord checks a typed record against the schema for kind.
func ValidateRecord(kind Kind, record any) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	v, err := decodeJSON(raw)
	if err != nil {
		return err
	}
	problems, err := Validate(kind, v)
	if err != nil {
		return err
	}
	if len(problems) > 0 {
		return &ValidationError{Kind: kind, Problems: problems}
	}
	return nil
}

func collectProblems(err *jsonschema.ValidationError, out *[]Problem) {
	if len(err.Causes) == 0 {
		*out = append(*out, Problem{
			Field:   fieldFromPointer(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectProblems(cause, out)
	}
}

// fieldFromPointer turns a JSON Pointer such as /items/0/qty into items.0.qty.
func fieldFromPointer(path string) string {
	if path == "" || path == "/" {
		return ""
	}
	path = strings.TrimPrefix(path, "/")
	return strings.ReplaceAll(path, "/", ".")
}
