package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	types "github.com/getmockd/storeadmin/pkg/api/types"
	"github.com/getmockd/storeadmin/pkg/query"
	"github.com/getmockd/storeadmin/pkg/view"
)

// errAborted is returned when the user declines a confirmation.
var errAborted = errors.New("aborted")

// mutation is the JSON shape printed after a change.
type mutation struct {
	Action   string   `json:"action"`
	Resource string   `json:"resource"`
	ID       types.ID `json:"id,omitempty"`
	Count    int      `json:"count,omitempty"`
	Record   any      `json:"record,omitempty"`
	Items    any      `json:"items,omitempty"`
}

func (m mutation) summary() string {
	switch {
	case m.Count > 0:
		return fmt.Sprintf("%s %d %s(s)", title(m.Action), m.Count, m.Resource)
	case m.ID != "":
		return fmt.Sprintf("%s %s %s", title(m.Action), m.Resource, m.ID)
	}
	return fmt.Sprintf("%s %s", title(m.Action), m.Resource)
}

// printMutation reports a change followed by the refreshed list, unless
// --quiet is set.
func printMutation[R any](w io.Writer, m mutation, items []R, render func(io.Writer, []R) error) error {
	if items == nil {
		items = []R{}
	}
	if !quiet {
		m.Items = items
	}
	return printResult(w, m, func() error {
		_, _ = fmt.Fprintln(w, m.summary())
		if quiet {
			return nil
		}
		_, _ = fmt.Fprintln(w)
		return render(w, items)
	})
}

// printRecords filters and prints a list.
func printRecords[R any](w io.Writer, items []R, filter *query.Filter, sel *query.Selector, render func(io.Writer, []R) error) error {
	items, err := query.Apply(filter, items)
	if err != nil {
		return err
	}
	return printList(w, items, sel, func() error { return render(w, items) })
}

// compileQuery compiles the optional --filter and --jsonpath values.
func compileQuery(filter, path string) (*query.Filter, *query.Selector, error) {
	var (
		f   *query.Filter
		sel *query.Selector
		err error
	)
	if filter != "" {
		if f, err = query.CompileFilter(filter); err != nil {
			return nil, nil, err
		}
	}
	if path != "" {
		if sel, err = query.CompileSelect(path); err != nil {
			return nil, nil, err
		}
	}
	return f, sel, nil
}

// anyChanged reports whether any of the named flags was set explicitly.
func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, n := range names {
		if cmd.Flags().Changed(n) {
			return true
		}
	}
	return false
}

// loadOne loads exactly one record from file.
func loadOne[R any](load func(...string) ([]R, error), file, plural string) (R, error) {
	var zero R
	records, err := load(file)
	if err != nil {
		return zero, err
	}
	if len(records) != 1 {
		return zero, fmt.Errorf("%s holds %d records; use 'storeadmin %s import' for several", file, len(records), plural)
	}
	return records[0], nil
}

// confirmDelete asks before deleting when running in a terminal.
func confirmDelete(resource string, id types.ID, yes bool) error {
	if yes || !interactive() {
		return nil
	}
	var ok bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Delete %s %s?", resource, id)).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run()
	if err != nil {
		return err
	}
	if !ok {
		return errAborted
	}
	return nil
}

// runImport adds records one by one, then refreshes the list once. It stops
// at the first failure and reports how many records were added. When some
// records went in before the failure the list is still refreshed and shown.
func runImport[R any](cmd *cobra.Command, s *session, resource string, records []R, dryRun bool,
	crud *view.CRUD[R], add func(context.Context, R) (R, error), render func(io.Writer, []R) error,
) error {
	w := cmd.OutOrStdout()
	if dryRun {
		m := mutation{Action: "validated", Resource: resource, Count: len(records)}
		return printResult(w, m, func() error {
			_, _ = fmt.Fprintln(w, m.summary())
			return nil
		})
	}

	ctx := commandContext(cmd)
	added := 0
	err := crud.Mutate(ctx, func(ctx context.Context) error {
		for _, r := range records {
			if _, err := add(ctx, r); err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		err = describeError(err, resource, "", s.cfg.APIURL)
		if errors.Is(err, view.ErrStale) {
			return err
		}
		err = fmt.Errorf("imported %d of %d %s(s): %w", added, len(records), resource, err)
		if added == 0 {
			return err
		}
		if rerr := crud.Reload(ctx); rerr != nil {
			return fmt.Errorf("%w; %w", err, describeError(rerr, resource, "", s.cfg.APIURL))
		}
		if perr := printMutation(w, mutation{Action: "imported", Resource: resource, Count: added}, crud.Items(), render); perr != nil {
			return perr
		}
		return err
	}
	return printMutation(w, mutation{Action: "imported", Resource: resource, Count: added}, crud.Items(), render)
}
