package recordfile

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/getmockd/storeadmin/pkg/api/types"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProducts_YAMLList(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "products.yaml", `
- name: Lamp
  category: HOME
  price: 19.5
  stock: 3
- name: Desk
  category: FURNITURE
  price: 120
  stock: 1
  tags: oak
`)

	got, err := LoadProducts(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, types.Product{Name: "Lamp", Category: types.CategoryHome, Price: 19.5, Stock: 3}, got[0])
	assert.Equal(t, "oak", got[1].Tags)
}

func TestLoadProducts_JSONSingle(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "one.json", `{"id": 7, "name": "Chair", "category": "FURNITURE", "price": 40, "stock": 2}`)

	got, err := LoadProducts(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, types.ID("7"), got[0].ID)
}

func TestLoadProducts_SchemaProblems(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "bad.yaml", `
name: Lamp
category: GARDEN
price: -1
stock: 1.5
colour: red
`)

	_, err := LoadProducts(path)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, path, verr.File)
	assert.Equal(t, 0, verr.Index)
	assert.Equal(t, KindProduct, verr.Kind)

	fields := make(map[string]bool)
	for _, p := range verr.Problems {
		fields[p.Field] = true
	}
	for _, f := range []string{"category", "price", "stock"} {
		assert.True(t, fields[f], "expected a problem for %s in %v", f, verr.Problems)
	}
	assert.Contains(t, err.Error(), "product 0 is invalid")
}

func TestLoadProducts_MissingRequired(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "bad.json", `[{"name": "Lamp"}]`)

	_, err := LoadProducts(path)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Problems)
}

func TestLoadUsers(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "users.yml", `
- name: Ann
  email: ann@example.com
  password: s3cret
  city: Oslo
  zip: "0150"
`)

	got, err := LoadUsers(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "s3cret", got[0].Password)
	assert.Equal(t, "0150", got[0].Zip)

	bad := write(t, dir, "bad.yml", "name: Bob\nemail: not-an-email\n")
	_, err = LoadUsers(bad)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Problems[0].Field)
}

func TestLoadOrders(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "order.yaml", `
userId: 3
items:
  - productId: 1
    qty: 2
totalAmount: 39
status: shipped
createdAt: "2024-05-01T10:00:00Z"
`)

	got, err := LoadOrders(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	o := got[0]
	assert.Equal(t, types.ID("3"), o.UserID)
	assert.Equal(t, []types.OrderItem{{ProductID: "1", Qty: 2}}, o.Items)
	assert.Equal(t, types.StatusShipped, o.Status)

	bad := write(t, dir, "bad.yaml", "userId: 3\nitems: []\ntotalAmount: 1\n")
	_, err = LoadOrders(bad)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items", verr.Problems[0].Field)
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	a := write(t, dir, "a.yaml", "")
	b := write(t, dir, "nested/deep/b.yaml", "")
	write(t, dir, "nested/c.txt", "")

	got, err := Expand(filepath.Join(dir, "**", "*.yaml"), a)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, got, "recursive match with duplicates dropped")

	_, err = Expand(filepath.Join(dir, "*.json"))
	assert.ErrorIs(t, err, ErrNoMatch)

	_, err = Expand(filepath.Join(dir, "[a-"))
	assert.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	empty := write(t, dir, "empty.yaml", "")
	_, err := LoadProducts(empty)
	assert.ErrorIs(t, err, ErrEmpty)

	txt := write(t, dir, "products.txt", "name: Lamp")
	_, err = LoadProducts(txt)
	assert.ErrorContains(t, err, "unsupported file type")

	broken := write(t, dir, "broken.json", "{")
	_, err = LoadProducts(broken)
	assert.ErrorContains(t, err, "parsing")
}

func TestSchema_Unknown(t *testing.T) {
	_, err := Validate(Kind("invoice"), map[string]any{})
	assert.Error(t, err)
}

func TestValidateRecord(t *testing.T) {
	err := ValidateRecord(KindProduct, types.Product{Name: "Lamp", Category: types.CategoryHome, Price: 1})
	require.NoError(t, err)

	err = ValidateRecord(KindProduct, types.Product{Category: "GARDEN"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "invalid product")
	assert.Len(t, verr.Problems, 2, "name and category")
}

func TestLoadOrders_LargeNumbersKeepEveryDigit(t *testing.T) {
	dir := t.TempDir()
	jsonPath := write(t, dir, "order.json",
		`{"userId": 9007199254740993, "items": [{"productId": 9007199254740995, "qty": 1}], "totalAmount": 5, "status": "pending"}`)
	yamlPath := write(t, dir, "order.yaml", `
userId: 9007199254740993
items:
  - productId: 9007199254740995
    qty: 1
totalAmount: 5
status: pending
`)

	for _, path := range []string{jsonPath, yamlPath} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			got, err := LoadOrders(path)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, types.ID("9007199254740993"), got[0].UserID)
			assert.Equal(t, types.ID("9007199254740995"), got[0].Items[0].ProductID)

			out, err := json.Marshal(got[0])
			require.NoError(t, err)
			assert.Contains(t, string(out), `"userId":9007199254740993`)
		})
	}
}
