package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/pgqlir/internal/ir"
)

// marshalProps converts properties to canonical JSON TEXT for storage.
// Uses RFC 8785 canonical JSON so equal property sets store identically.
func marshalProps(props ir.IRObject) (string, error) {
	if props == nil {
		props = ir.IRObject{}
	}
	data, err := ir.MarshalCanonical(props)
	if err != nil {
		return "", fmt.Errorf("marshal props: %w", err)
	}
	return string(data), nil
}

// unmarshalProps parses stored JSON TEXT back into properties. Numbers are
// decoded through json.Number so integers above 2^53 keep their precision.
func unmarshalProps(data string) (ir.IRObject, error) {
	if data == "" || data == "{}" {
		return ir.IRObject{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("unmarshal props: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unmarshal props: trailing data after object")
	}

	obj := make(ir.IRObject, len(raw))
	for k, v := range raw {
		value, err := toIRValue(v)
		if err != nil {
			return nil, fmt.Errorf("unmarshal props: key %q: %w", k, err)
		}
		obj[k] = value
	}
	return obj, nil
}

func toIRValue(v any) (ir.IRValue, error) {
	switch v := v.(type) {
	case nil:
		return ir.IRNull{}, nil
	case string:
		return ir.IRString(v), nil
	case bool:
		return ir.IRBool(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("number %s is not an integer", v)
		}
		return ir.IRInt(n), nil
	case []any:
		arr := make(ir.IRArray, len(v))
		for i, elem := range v {
			value, err := toIRValue(elem)
			if err != nil {
				return nil, err
			}
			arr[i] = value
		}
		return arr, nil
	case map[string]any:
		obj := make(ir.IRObject, len(v))
		for k, elem := range v {
			value, err := toIRValue(elem)
			if err != nil {
				return nil, err
			}
			obj[k] = value
		}
		return obj, nil
	}
	return nil, fmt.Errorf("unsupported JSON value %T", v)
}
