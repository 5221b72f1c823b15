package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrDecode is wrapped by every error returned from Decode.
var ErrDecode = errors.New("not a JSON object")

// maxDepth bounds nesting so hostile input cannot exhaust the stack.
const maxDepth = 10000

// Decode parses raw as a single JSON object. Empty input, invalid JSON,
// trailing data and non-object top-level values are all reported as
// errors wrapping ErrDecode.
func Decode(raw []byte) (*Object, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: empty line", ErrDecode)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: top-level value is %s", ErrDecode, describe(tok))
	}

	obj, err := decodeObject(dec, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after object", ErrDecode)
	}

	return obj, nil
}

// decodeObject reads entries up to and including the closing brace. The
// opening brace has already been consumed.
func decodeObject(dec *json.Decoder, depth int) (*Object, error) {
	if depth > maxDepth {
		return nil, errors.New("nesting too deep")
	}

	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %s", describe(tok))
		}
		value, err := decodeValue(dec, depth)
		if err != nil {
			return nil, err
		}
		obj.Set(key, value)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder, depth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, errors.New("nesting too deep")
	}

	elems := []Value{}
	for dec.More() {
		elem, err := decodeValue(dec, depth)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, elem)
	}

	if err := expectDelim(dec, ']'); err != nil {
		return Value{}, err
	}
	return Array(elems...), nil
}

func decodeValue(dec *json.Decoder, depth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj, err := decodeObject(dec, depth+1)
			if err != nil {
				return Value{}, err
			}
			return ObjectValue(obj), nil
		case '[':
			return decodeArray(dec, depth+1)
		default:
			return Value{}, fmt.Errorf("unexpected %q", rune(t))
		}
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", t)
	}
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("expected %q, got %s", rune(want), describe(tok))
	}
	return nil
}

func describe(tok json.Token) string {
	switch t := tok.(type) {
	case json.Delim:
		if t == '[' {
			return "an array"
		}
		return fmt.Sprintf("%q", rune(t))
	case string:
		return "a string"
	case json.Number:
		return "a number"
	case bool:
		return "a boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", t)
	}
}
