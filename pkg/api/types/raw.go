package types

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errNotObject = errors.New("not a JSON object")

type member struct {
	key   string
	value json.RawMessage
}

// members splits a JSON object into its top-level members in document order.
func members(data []byte) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotObject
	}
	var out []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, member{key: key, value: v})
	}
	return out, nil
}

func byKey(ms []member) map[string]json.RawMessage {
	idx := make(map[string]json.RawMessage, len(ms))
	for _, m := range ms {
		idx[m.key] = m.value
	}
	return idx
}

// overlay rewrites raw so that it carries typed's fields. base is what the
// struct encoded to when raw was decoded. A member whose encoding did not
// change keeps its original bytes, members the struct does not know about are
// passed through, and known members the struct now omits are dropped.
func overlay(raw, base, typed []byte) ([]byte, error) {
	rawMembers, err := members(raw)
	if err != nil {
		return nil, err
	}
	baseMembers, err := members(base)
	if err != nil {
		return nil, err
	}
	typedMembers, err := members(typed)
	if err != nil {
		return nil, err
	}
	before, after := byKey(baseMembers), byKey(typedMembers)

	var buf bytes.Buffer
	buf.WriteByte('{')
	write := func(key string, value json.RawMessage) {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(value)
	}

	seen := make(map[string]bool, len(rawMembers))
	for _, m := range rawMembers {
		seen[m.key] = true
		was, known := before[m.key]
		now, kept := after[m.key]
		switch {
		case !known && !kept:
			write(m.key, m.value)
		case known && kept && bytes.Equal(was, now):
			write(m.key, m.value)
		case kept:
			write(m.key, now)
		}
	}
	for _, m := range typedMembers {
		if !seen[m.key] {
			write(m.key, m.value)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// rawObject returns a private copy of data when it is a JSON object.
func rawObject(data []byte) json.RawMessage {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil
	}
	return append(json.RawMessage(nil), data...)
}
