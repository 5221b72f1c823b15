package record

import (
	"errors"
	"strings"
	"testing"
)

func TestDecode_Objects(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKeys []string
		wantJSON string
	}{
		{
			name:     "simple record",
			input:    `{"msg":"hello","level":"info","timestamp":"2024-01-01T00:00:00Z"}`,
			wantKeys: []string{"msg", "level", "timestamp"},
			wantJSON: `{"msg":"hello","level":"info","timestamp":"2024-01-01T00:00:00Z"}`,
		},
		{
			name:     "empty object",
			input:    `{}`,
			wantKeys: []string{},
			wantJSON: `{}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  {\"a\": 1}\r",
			wantKeys: []string{"a"},
			wantJSON: `{"a":1}`,
		},
		{
			name:     "nested values keep order",
			input:    `{"z":{"b":2,"a":[1,"x",null,true]},"a":false}`,
			wantKeys: []string{"z", "a"},
			wantJSON: `{"z":{"b":2,"a":[1,"x",null,true]},"a":false}`,
		},
		{
			name:     "number literal preserved",
			input:    `{"big":12345678901234567890,"f":1.50e3}`,
			wantKeys: []string{"big", "f"},
			wantJSON: `{"big":12345678901234567890,"f":1.50e3}`,
		},
		{
			name:     "duplicate key keeps first position and last value",
			input:    `{"a":1,"b":2,"a":3}`,
			wantKeys: []string{"a", "b"},
			wantJSON: `{"a":3,"b":2}`,
		},
		{
			name:     "html characters not escaped",
			input:    `{"q":"<a&b>"}`,
			wantKeys: []string{"q"},
			wantJSON: `{"q":"<a&b>"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := Decode([]byte(tt.input))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			keys := obj.Keys()
			if strings.Join(keys, ",") != strings.Join(tt.wantKeys, ",") {
				t.Errorf("Keys() = %v, want %v", keys, tt.wantKeys)
			}
			if got := obj.JSON(); got != tt.wantJSON {
				t.Errorf("JSON() = %s, want %s", got, tt.wantJSON)
			}
		})
	}
}

func TestDecode_Failures(t *testing.T) {
	inputs := map[string]string{
		"empty":            "",
		"whitespace":       "   \t",
		"plain text":       "not json at all",
		"array":            `[1,2,3]`,
		"string":           `"hello"`,
		"number":           `42`,
		"null":             `null`,
		"truncated":        `{"a":1`,
		"trailing comma":   `{"a":1,}`,
		"missing colon":    `{"a" 1}`,
		"trailing data":    `{"a":1} {"b":2}`,
		"trailing garbage": `{"a":1} x`,
		"bare key":         `{a:1}`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			obj, err := Decode([]byte(input))
			if err == nil {
				t.Fatalf("Decode(%q) = %v, want error", input, obj.JSON())
			}
			if !errors.Is(err, ErrDecode) {
				t.Errorf("Decode(%q) error = %v, want ErrDecode", input, err)
			}
		})
	}
}

func TestDecode_DeepNestingRejected(t *testing.T) {
	input := `{"a":` + strings.Repeat("[", maxDepth+10) + strings.Repeat("]", maxDepth+10) + `}`
	if _, err := Decode([]byte(input)); !errors.Is(err, ErrDecode) {
		t.Errorf("Decode() error = %v, want ErrDecode", err)
	}
}

func TestValue_Text(t *testing.T) {
	obj, err := Decode([]byte(`{"s":"a b","n":1.5,"b":true,"z":null,"o":{"k":"v"},"l":[]}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	want := map[string]string{
		"s": "a b",
		"n": "1.5",
		"b": "true",
		"z": "null",
		"o": `{"k":"v"}`,
		"l": "[]",
	}
	for key, text := range want {
		v, ok := obj.Get(key)
		if !ok {
			t.Fatalf("Get(%q) missing", key)
		}
		if got := v.Text(); got != text {
			t.Errorf("Get(%q).Text() = %q, want %q", key, got, text)
		}
	}
}

func TestValue_Kinds(t *testing.T) {
	if k := Null().Kind(); k != KindNull {
		t.Errorf("Null().Kind() = %v", k)
	}
	if s, ok := String("x").AsString(); !ok || s != "x" {
		t.Errorf("AsString() = %q, %v", s, ok)
	}
	if _, ok := String("1").AsNumber(); ok {
		t.Error("string reported as number")
	}
	if n, ok := Number("7").AsNumber(); !ok || n.String() != "7" {
		t.Errorf("AsNumber() = %v, %v", n, ok)
	}
	if KindObject.String() != "object" {
		t.Errorf("KindObject.String() = %q", KindObject.String())
	}
}

func TestFieldsJSON(t *testing.T) {
	fields := []Field{
		{Key: "b", Value: Number("2")},
		{Key: "a", Value: String("x\ny")},
	}
	if got, want := FieldsJSON(fields), `{"b":2,"a":"x\ny"}`; got != want {
		t.Errorf("FieldsJSON() = %s, want %s", got, want)
	}
	if got := FieldsJSON(nil); got != "{}" {
		t.Errorf("FieldsJSON(nil) = %s, want {}", got)
	}
}
