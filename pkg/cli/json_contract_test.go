package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	types "github.com/getmockd/storeadmin/pkg/api/types"
	"github.com/getmockd/storeadmin/pkg/query"
)

// withOutputMode sets the --json and --quiet globals for the duration of t.
func withOutputMode(t *testing.T, asJSON, isQuiet bool) {
	t.Helper()
	oldJSON, oldQuiet := jsonOutput, quiet
	jsonOutput, quiet = asJSON, isQuiet
	t.Cleanup(func() { jsonOutput, quiet = oldJSON, oldQuiet })
}

// decodeObject fails the test unless data is a single JSON object.
func decodeObject(t *testing.T, data []byte) map[string]any {
	t.Helper()
	if len(data) == 0 {
		t.Fatal("stdout was empty; expected JSON output")
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		t.Fatalf("stdout is not a JSON object:\n---\n%s\n---\nerror: %v", data, err)
	}
	return obj
}

var testProducts = []types.Product{
	{ID: "1", Name: "Lamp", Category: types.CategoryHome, Price: 19.5, Stock: 3, Tags: "light"},
	{ID: "2", Name: "Chair", Category: types.CategoryFurniture, Price: 45, Stock: 0},
}

func TestPrintResult_JSONSkipsText(t *testing.T) {
	withOutputMode(t, true, false)

	var buf bytes.Buffer
	called := false
	err := printResult(&buf, map[string]string{"status": "ok"}, func() error {
		called = true
		buf.WriteString("prose")
		return nil
	})
	if err != nil {
		t.Fatalf("printResult: %v", err)
	}
	if called {
		t.Error("text function ran in JSON mode")
	}
	obj := decodeObject(t, buf.Bytes())
	if obj["status"] != "ok" {
		t.Errorf("status: got %v, want ok", obj["status"])
	}
}

func TestPrintMutation_JSON(t *testing.T) {
	tests := []struct {
		name      string
		quiet     bool
		wantItems bool
	}{
		{name: "includes refreshed list", quiet: false, wantItems: true},
		{name: "quiet omits list", quiet: true, wantItems: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withOutputMode(t, true, tt.quiet)

			var buf bytes.Buffer
			m := mutation{Action: "created", Resource: "product", ID: "1", Record: testProducts[0]}
			if err := printMutation(&buf, m, testProducts, renderProducts); err != nil {
				t.Fatalf("printMutation: %v", err)
			}

			obj := decodeObject(t, buf.Bytes())
			for _, key := range []string{"action", "resource", "id", "record"} {
				if _, ok := obj[key]; !ok {
					t.Errorf("missing key %q", key)
				}
			}
			items, ok := obj["items"].([]any)
			if ok != tt.wantItems {
				t.Fatalf("items present: got %v, want %v", ok, tt.wantItems)
			}
			if ok && len(items) != 2 {
				t.Errorf("items: got %d, want 2", len(items))
			}
		})
	}
}

func TestPrintMutation_EmptyListIsArray(t *testing.T) {
	withOutputMode(t, true, false)

	var buf bytes.Buffer
	m := mutation{Action: "deleted", Resource: "product", ID: "2"}
	if err := printMutation[types.Product](&buf, m, nil, renderProducts); err != nil {
		t.Fatalf("printMutation: %v", err)
	}
	if !strings.Contains(buf.String(), `"items": []`) {
		t.Errorf("expected an empty items array, got:\n%s", buf.String())
	}
}

func TestPrintMutation_Text(t *testing.T) {
	withOutputMode(t, false, false)

	var buf bytes.Buffer
	m := mutation{Action: "updated", Resource: "product", ID: "1"}
	if err := printMutation(&buf, m, testProducts[:1], renderProducts); err != nil {
		t.Fatalf("printMutation: %v", err)
	}
	want := "Updated product 1\n\n" +
		"ID  NAME  CATEGORY  PRICE  STOCK  TAGS\n" +
		"1   Lamp  Home      19.50  3      light\n"
	if buf.String() != want {
		t.Errorf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestPrintRecords_FilterAndSelect(t *testing.T) {
	filter, sel, err := compileQuery("stock > 0", "$[*].name")
	if err != nil {
		t.Fatalf("compileQuery: %v", err)
	}

	t.Run("text prints one value per line", func(t *testing.T) {
		withOutputMode(t, false, false)
		var buf bytes.Buffer
		if err := printRecords(&buf, testProducts, filter, sel, renderProducts); err != nil {
			t.Fatalf("printRecords: %v", err)
		}
		if buf.String() != "Lamp\n" {
			t.Errorf("got %q, want %q", buf.String(), "Lamp\n")
		}
	})

	t.Run("json prints an array", func(t *testing.T) {
		withOutputMode(t, true, false)
		var buf bytes.Buffer
		if err := printRecords(&buf, testProducts, filter, sel, renderProducts); err != nil {
			t.Fatalf("printRecords: %v", err)
		}
		var got []string
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("not a JSON array: %v\n%s", err, buf.String())
		}
		if len(got) != 1 || got[0] != "Lamp" {
			t.Errorf("got %v, want [Lamp]", got)
		}
	})
}

func TestPrintList_NonStringValuesAsJSON(t *testing.T) {
	withOutputMode(t, false, false)

	sel, err := query.CompileSelect("$[*].price")
	if err != nil {
		t.Fatalf("CompileSelect: %v", err)
	}
	var buf bytes.Buffer
	if err := printList(&buf, testProducts, sel, nil); err != nil {
		t.Fatalf("printList: %v", err)
	}
	if buf.String() != "19.5\n45\n" {
		t.Errorf("got %q", buf.String())
	}
}
