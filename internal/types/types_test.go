package types

import "testing"

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		name string
		want Language
		ok   bool
	}{
		{"go", LanguageGo, true},
		{"golang", LanguageGo, true},
		{"c++", LanguageCPP, true},
		{"py", LanguagePython, true},
		{"ts", LanguageJavaScript, true},
		{"kotlin", LanguageJava, true},
		{"ruby", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseLanguage(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLanguage(%q) = (%q, %v), want (%q, %v)", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSimplifiedValueDepth(t *testing.T) {
	leaf := &SimplifiedValue{DisplayValue: "1"}
	if got := leaf.Depth(); got != 1 {
		t.Errorf("leaf depth = %d, want 1", got)
	}

	tree := &SimplifiedValue{
		Children: []ChildValue{
			{Key: "a", Value: &SimplifiedValue{
				Children: []ChildValue{{Key: "b", Value: leaf}},
			}},
			{Key: "c", Value: leaf},
		},
	}
	if got := tree.Depth(); got != 3 {
		t.Errorf("tree depth = %d, want 3", got)
	}

	var nilValue *SimplifiedValue
	if got := nilValue.Depth(); got != 0 {
		t.Errorf("nil depth = %d, want 0", got)
	}
}

func TestSimplifiedValueChild(t *testing.T) {
	v := &SimplifiedValue{
		Children: []ChildValue{
			{Key: "Name", Value: &SimplifiedValue{DisplayValue: "Alice"}},
		},
	}
	if c := v.Child("Name"); c == nil || c.DisplayValue != "Alice" {
		t.Errorf("Child(Name) = %+v", c)
	}
	if c := v.Child("Missing"); c != nil {
		t.Errorf("Child(Missing) = %+v, want nil", c)
	}
}

func TestClamped(t *testing.T) {
	opts := SimplificationOptions{MaxDepth: -3, MaxArrayLength: 0, MaxStringLength: 10}.Clamped()
	if opts.MaxDepth != 1 || opts.MaxArrayLength != 1 {
		t.Errorf("clamped = %+v", opts)
	}
	if opts.MaxStringLength != 10 {
		t.Errorf("valid bound must not change: %+v", opts)
	}
}
