package jsonout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Norgate-AV/wintools/internal/jsonout"
)

func TestEscape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{name: "plain", in: "Notepad", expected: "Notepad"},
		{name: "backslash", in: `C:\Windows\notepad.exe`, expected: `C:\\Windows\\notepad.exe`},
		{name: "quote", in: `say "hi"`, expected: `say \"hi\"`},
		{name: "newline and tab", in: "a\nb\tc", expected: `a\nb\tc`},
		{name: "other control bytes verbatim", in: "a\rb\x01", expected: "a\rb\x01"},
		{name: "utf8 verbatim", in: "Größe", expected: "Größe"},
		{name: "empty", in: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, jsonout.Escape(tt.in))
		})
	}
}

func TestObject_OrderAndSeparators(t *testing.T) {
	t.Parallel()

	got := jsonout.NewObject().
		Int("handle", 42).
		String("title", "x").
		Bool("visible", false).
		Uint("style", 7).
		Encode()

	assert.Equal(t, `{"handle": 42, "title": "x", "visible": false, "style": 7}`, got)
}

func TestObject_OmitIfDefault(t *testing.T) {
	t.Parallel()

	obj := jsonout.NewObject().
		Int("handle", 1).
		StringIf("title", "").
		IntIf("sibling", 0).
		UintIf("style", 0).
		Flag("popup", false).
		Flag("topmost", true)

	assert.Equal(t, 2, obj.Len())
	assert.Equal(t, `{"handle": 1, "topmost": true}`, obj.Encode())
}

func TestObject_Empty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{}", jsonout.NewObject().Encode())
}

func TestArray(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[]", jsonout.Array(nil))
	assert.Equal(t, `[{"a": 1}]`, jsonout.Array([]string{`{"a": 1}`}))
	assert.Equal(t, `[{"a": 1}, {"a": 2}]`, jsonout.Array([]string{`{"a": 1}`, `{"a": 2}`}))
}
