package tokenizer

import (
	"reflect"
	"testing"
)

func newTest() *Tokenizer {
	return New(Config{Quotes: []rune{'"', '\''}, EscapeQuotes: true})
}

func TestSplitTopLevel(t *testing.T) {
	tok := newTest()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"flat list", `1, 2, 3`, []string{"1", "2", "3"}},
		{"quoted delimiter", `1, "a,b", 2`, []string{"1", `"a,b"`, "2"}},
		{"nested brackets", `1, "a,b", [2,3]`, []string{"1", `"a,b"`, "[2,3]"}},
		{"nested braces", `a: 1, b: {c: 2, d: 3}`, []string{"a: 1", "b: {c: 2, d: 3}"}},
		{"parens nest too", `f(1, 2), 3`, []string{"f(1, 2)", "3"}},
		{"escaped quote inside string", `"say \"hi, there\"", 2`, []string{`"say \"hi, there\""`, "2"}},
		{"empty segments dropped", `1,, 2, `, []string{"1", "2"}},
		{"whitespace trimmed", `  a ,  b `, []string{"a", "b"}},
		{"single segment", `hello`, []string{"hello"}},
		{"empty input", ``, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.SplitTopLevel(tt.input, ',')
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitTopLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitTopLevelUnbalanced(t *testing.T) {
	tok := newTest()

	// Unbalanced input must never abort the scan; the trailing buffer is
	// always flushed.
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"unclosed bracket", `[1, 2`, []string{"[1, 2"}},
		{"extra closer then split", `1], 2`, []string{"1]", "2"}},
		{"unclosed quote", `"abc, def`, []string{`"abc, def`}},
		{"negative depth recovers", `}}a, b`, []string{"}}a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.SplitTopLevel(tt.input, ',')
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitTopLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitKeyValue(t *testing.T) {
	tok := newTest()

	tests := []struct {
		name  string
		input string
		key   string
		value string
		ok    bool
	}{
		{"colon separator", `Name: "Alice"`, "Name", `"Alice"`, true},
		{"equals separator", `x = 42`, "x", "42", true},
		{"first separator wins", `url: "http://host:80"`, "url", `"http://host:80"`, true},
		{"separator inside braces ignored", `{a: 1}`, "", "", false},
		{"separator inside quotes ignored", `"a: 1"`, "", "", false},
		{"nested value kept whole", `user: {id: 1, name: "x"}`, "user", `{id: 1, name: "x"}`, true},
		{"no separator", `just a value`, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, value, ok := tok.SplitKeyValue(tt.input)
			if ok != tt.ok || key != tt.key || value != tt.value {
				t.Errorf("SplitKeyValue(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.input, key, value, ok, tt.key, tt.value, tt.ok)
			}
		})
	}
}

func TestStripOuter(t *testing.T) {
	tests := []struct {
		input string
		open  byte
		close byte
		want  string
		ok    bool
	}{
		{"{a, b}", '{', '}', "a, b", true},
		{"[1, 2]", '[', ']', "1, 2", true},
		{"  {x}  ", '{', '}', "x", true},
		{"{unclosed", '{', '}', "{unclosed", false},
		{"plain", '{', '}', "plain", false},
		{"{}", '{', '}', "", true},
	}

	for _, tt := range tests {
		got, ok := StripOuter(tt.input, tt.open, tt.close)
		if got != tt.want || ok != tt.ok {
			t.Errorf("StripOuter(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBalanced(t *testing.T) {
	tok := newTest()

	tests := []struct {
		input string
		want  bool
	}{
		{"{a: [1, 2]}", true},
		{"{a: [1, 2]", false},
		{`"{unterminated`, false},
		{`"{inside a string"`, true},
		{"", true},
	}

	for _, tt := range tests {
		if got := tok.Balanced(tt.input); got != tt.want {
			t.Errorf("Balanced(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
