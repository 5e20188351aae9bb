package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID is a server-assigned record identifier.
// It is always written as a JSON string but decodes from either a string or a
// number, since backends disagree on the representation.
type ID string

// String returns the identifier as a string.
func (id ID) String() string { return string(id) }

// IsZero reports whether the identifier is empty.
func (id ID) IsZero() bool { return id == "" }

// UnmarshalJSON accepts "abc", 42 and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %s", data)
	}
	*id = ID(n.String())
	return nil
}

// Category is a product category.
type Category string

// Product categories known to the backend.
const (
	CategoryElectronics Category = "ELECTRONICS"
	CategoryFurniture   Category = "FURNITURE"
	CategoryHome        Category = "HOME"
	CategoryFashion     Category = "FASHION"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryElectronics, CategoryFurniture, CategoryHome, CategoryFashion}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory parses a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid category %q (valid: %s)", s, joinCategories())
	}
	return c, nil
}

func joinCategories() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Product is a catalog entry.
type Product struct {
	ID          ID       `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Tags        string   `json:"tags"`
	Image       string   `json:"image"`
}

// RecordID returns the product identifier.
func (p Product) RecordID() ID { return p.ID }

// User is a customer or staff account. Password is write-only: it is sent on
// add/edit when set and never populated from list responses by well-behaved
// backends.
type User struct {
	ID       ID     `json:"id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Street   string `json:"street"`
	City     string `json:"city"`
	Zip      string `json:"zip"`
}

// RecordID returns the user identifier.
func (u User) RecordID() ID { return u.ID }

// Redacted returns a copy of u without the password.
func (u User) Redacted() User {
	u.Password = ""
	return u
}
