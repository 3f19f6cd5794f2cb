package answers

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{name: "nil input", input: nil, want: []string{}},
		{name: "empty string", input: "", want: []string{}},
		{name: "single value", input: "Budapest", want: []string{"budapest"}},
		{name: "trims and lowercases", input: "  PhotoSynthesis  ", want: []string{"photosynthesis"}},
		{name: "string slice", input: []string{" A ", "b", "C"}, want: []string{"a", "b", "c"}},
		{name: "any slice", input: []any{"A", 3, true}, want: []string{"a", "3", "true"}},
		{name: "json array", input: `["A","C"]`, want: []string{"a", "c"}},
		{name: "json array with spaces", input: ` [" A ", "B"] `, want: []string{"a", "b"}},
		{name: "json array of numbers", input: `[1, 2]`, want: []string{"1", "2"}},
		{name: "invalid json stays one token", input: `[not valid json`, want: []string{"[not valid json"}},
		{name: "bracketed non-json stays one token", input: `[see note 1, page 2]`, want: []string{"[see note 1, page 2]"}},
		{name: "legacy csv", input: "A, B ,C", want: []string{"a", "b", "c"}},
		{name: "comma with quote marker not split", input: `say "hi, there"`, want: []string{`say "hi, there"`}},
		{name: "comma with brace marker not split", input: `{x, y}`, want: []string{`{x, y}`}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Normalize(%v) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []any{
		"A, B, C",
		`["Igaz","Hamis"]`,
		"single",
		[]string{"x", "Y"},
		nil,
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(any(once))
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Normalize not idempotent for %v: first %v, second %v", in, once, twice)
		}
	}
}
