// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package input

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"nickandperla.net/golp/internal/record"
)

// jsonParser reads a top-level JSON array of flat objects. Keys of the
// first object, in their original order, become the header; every object
// contributes one record with fields in header order.
type jsonParser struct{}

func (p *jsonParser) Records(r io.Reader) (record.Producer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var objs []json.RawMessage
	if err := json.Unmarshal(data, &objs); err != nil {
		return nil, fmt.Errorf("json input: %v", err)
	}
	if len(objs) == 0 {
		return &jsonProducer{raw: string(data)}, nil
	}

	header, err := objectKeys(objs[0])
	if err != nil {
		return nil, err
	}

	recs := make([]record.Record, len(objs))
	for i, raw := range objs {
		var obj map[string]any
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&obj); err != nil {
			return nil, fmt.Errorf("json input: element %d: %v", i, err)
		}
		fields := make([]string, len(header))
		for j, key := range header {
			fields[j] = jsonScalar(obj[key])
		}
		recs[i] = record.Record{Fields: fields, Raw: string(raw)}
	}
	return &jsonProducer{
		SliceProducer: record.SliceProducer{Recs: recs, Names: header},
		raw:           string(data),
	}, nil
}

// jsonProducer is a SliceProducer that remembers the document it was
// parsed from.
type jsonProducer struct {
	record.SliceProducer
	raw string
}

// Contents returns the original JSON document.
func (p *jsonProducer) Contents() string { return p.raw }

// objectKeys extracts the keys of a flat JSON object in document order.
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("json input: %v", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("json input: expected an array of objects")
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("json input: %v", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("json input: bad object key")
		}
		keys = append(keys, key)

		val, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("json input: %v", err)
		}
		if _, ok := val.(json.Delim); ok {
			return nil, fmt.Errorf("json input: nested value under %q not supported", key)
		}
	}
	return keys, nil
}

func jsonScalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", t)
	}
}
