package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// OrderStatus is the fulfilment state of an order.
// It is a flat enumeration: any status may be replaced by any other.
type OrderStatus string

// Order statuses.
const (
	StatusPending   OrderStatus = "pending"
	StatusShipped   OrderStatus = "shipped"
	StatusCancelled OrderStatus = "cancelled"
	StatusDelivered OrderStatus = "delivered"
)

// OrderStatuses lists every status in display order.
var OrderStatuses = []OrderStatus{StatusPending, StatusShipped, StatusCancelled, StatusDelivered}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseOrderStatus parses a status name case-insensitively.
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		names := make([]string, len(OrderStatuses))
		for i, v := range OrderStatuses {
			names[i] = string(v)
		}
		return "", fmt.Errorf("invalid order status %q (valid: %s)", s, strings.Join(names, ", "))
	}
	return st, nil
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID ID  `json:"productId"`
	Qty       int `json:"qty"`
}

// Order is a customer purchase. Orders are created outside this tool; the
// admin surface only changes their status.
//
// A decoded order remembers the object it was read from. Encoding it again
// reproduces that object with only the changed fields rewritten, so members
// this type does not model and numeric identifiers survive a round trip.
type Order struct {
	ID          ID          `json:"id,omitempty"`
	UserID      ID          `json:"userId"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
	Status      OrderStatus `json:"status"`
	CreatedAt   string      `json:"createdAt,omitempty"`
	Address     string      `json:"address,omitempty"`

	raw json.RawMessage
}

type plainOrder Order

// UnmarshalJSON decodes the order and keeps a copy of the source object.
func (o *Order) UnmarshalJSON(data []byte) error {
	var p plainOrder
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*o = Order(p)
	o.raw = rawObject(data)
	return nil
}

// MarshalJSON encodes the order over the object it was decoded from.
func (o Order) MarshalJSON() ([]byte, error) {
	typed, err := json.Marshal(plainOrder(o))
	if err != nil || o.raw == nil {
		return typed, err
	}
	var source plainOrder
	if err := json.Unmarshal(o.raw, &source); err != nil {
		return nil, err
	}
	base, err := json.Marshal(source)
	if err != nil {
		return nil, err
	}
	return overlay(o.raw, base, typed)
}

// RecordID returns the order identifier.
func (o Order) RecordID() ID { return o.ID }

// createdAtLayouts are the timestamp shapes seen from common backends.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CreatedTime parses CreatedAt. The raw string is kept on the record so that
// a status update sends it back untouched.
func (o Order) CreatedTime() (time.Time, bool) {
	if o.CreatedAt == "" {
		return time.Time{}, false
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, o.CreatedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ItemCount returns the total quantity across all lines.
func (o Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Qty
	}
	return n
}
