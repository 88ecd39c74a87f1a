// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package format

import (
	"encoding/json"
	"fmt"
	"io"

	"nickandperla.net/golp/internal/eval"
)

// jsonPrinter renders the whole result as one JSON document. Records
// become objects when a header names their columns, arrays otherwise.
type jsonPrinter struct {
	w io.Writer
}

func (p *jsonPrinter) PrintResult(result eval.Value, header []string) error {
	v, err := materialize(result)
	if err != nil {
		return err
	}
	tree, err := jsonTree(v, header)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)
	return enc.Encode(tree)
}

func jsonTree(v eval.Value, header []string) (any, error) {
	switch t := v.(type) {
	case eval.Null:
		return nil, nil
	case eval.Bool:
		return t.Value, nil
	case eval.Num:
		return t.Value, nil
	case eval.Str:
		return t.Value, nil
	case eval.List:
		out := make([]any, len(t.Items))
		for i, item := range t.Items {
			sub, err := jsonTree(item, header)
			if err != nil {
				return nil, err
			}
			out[i] = sub
		}
		return out, nil
	case eval.RecordVal:
		if header != nil {
			obj := make(map[string]string, len(header))
			for i, name := range header {
				if f, ok := t.Rec.Field(i); ok {
					obj[name] = f
				}
			}
			return obj, nil
		}
		out := make([]any, len(t.Rec.Fields))
		for i, f := range t.Rec.Fields {
			out[i] = f
		}
		return out, nil
	case eval.Seq:
		items, err := t.Drain()
		if err != nil {
			return nil, err
		}
		return jsonTree(eval.List{Items: items}, header)
	}
	return nil, fmt.Errorf("cannot render %s as json", eval.Repr(v))
}
