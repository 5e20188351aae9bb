package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/getmockd/storeadmin/pkg/cli/internal/output"
	"github.com/getmockd/storeadmin/pkg/query"
)

// printResult outputs a single operation result.
//
// Contract: when --json is active, ONLY the JSON encoding of data is written
// to stdout. Human-readable prose (progress messages, hints) must go to stderr
// or be omitted entirely. textFn is called only in text mode.
func printResult(w io.Writer, data any, textFn func() error) error {
	if jsonOutput {
		return output.JSON(w, data)
	}
	return textFn()
}

// printList outputs a collection of items, applying the --jsonpath selection
// when one is given. Same contract as printResult.
func printList(w io.Writer, data any, sel *query.Selector, textFn func() error) error {
	if sel != nil {
		values, err := sel.Get(data)
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(w, values)
		}
		for _, v := range values {
			if s, ok := v.(string); ok {
				_, _ = fmt.Fprintln(w, s)
				continue
			}
			b, err := json.Marshal(v)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(w, string(b))
		}
		return nil
	}
	if jsonOutput {
		return output.JSON(w, data)
	}
	return textFn()
}

// title renders an enum value such as "pending" or "ELECTRONICS" for display.
func title(s string) string {
	return cases.Title(language.English).String(s)
}
