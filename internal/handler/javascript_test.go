package handler

import (
	"testing"

	"github.com/standardbeagle/varlens/internal/patterns"
	"github.com/standardbeagle/varlens/internal/types"
)

func newJS() *JavaScriptHandler {
	return NewJavaScriptHandler(patterns.ForLanguage(types.LanguageJavaScript))
}

func TestJSParseObject(t *testing.T) {
	h := newJS()

	raw := "{a: 1, b: {c: 2}}"
	pv := h.ParseVariableValue(raw, "Object")
	if !pv.IsExpandable || pv.ObjectKeyCount != 2 {
		t.Fatalf("object = %+v", pv)
	}

	fields := h.ParseStructFields(raw)
	if len(fields) != 2 || fields[1].Name != "b" || fields[1].Raw != "{c: 2}" {
		t.Errorf("fields = %+v", fields)
	}
}

func TestJSConstructorPrefixes(t *testing.T) {
	h := newJS()

	pv := h.ParseVariableValue("Array(3) [1, 2, 3]", "Array")
	if !pv.IsExpandable || pv.ArrayLength != 3 {
		t.Errorf("Array(3) = %+v", pv)
	}

	// Truncated previews keep the declared count.
	pv = h.ParseVariableValue("Array(100) [1, 2, 3]", "Array")
	if pv.ArrayLength != 100 {
		t.Errorf("declared count = %d, want 100", pv.ArrayLength)
	}

	pv = h.ParseVariableValue("Object {name: 'x'}", "Object")
	if !pv.IsExpandable || pv.ObjectKeyCount != 1 {
		t.Errorf("Object prefix = %+v", pv)
	}
}

func TestJSParseMap(t *testing.T) {
	h := newJS()

	raw := "Map(2) {'a' => 1, 'b' => 2}"
	pv := h.ParseVariableValue(raw, "Map")
	if !pv.IsExpandable || pv.ObjectKeyCount != 2 {
		t.Fatalf("map = %+v", pv)
	}

	fields := h.ParseStructFields(raw)
	if len(fields) != 2 || fields[0].Name != "a" || fields[0].Raw != "1" {
		t.Errorf("map entries = %+v", fields)
	}

	// Arrow inside a quoted key must not split.
	fields = h.ParseStructFields("Map(1) {'a => b' => 1}")
	if len(fields) != 1 || fields[0].Name != "a => b" {
		t.Errorf("quoted arrow key = %+v", fields)
	}

	if !h.IsStructuredType(raw, "Map") {
		t.Error("Map is structured")
	}
}

func TestJSFunctionPreviewIsOpaque(t *testing.T) {
	h := newJS()

	for _, raw := range []string{
		"function add(a, b) { return a + b }",
		"() => { return 1 }",
		"class Order { constructor() {} }",
	} {
		pv := h.ParseVariableValue(raw, "Function")
		if pv.IsExpandable {
			t.Errorf("%q: function previews are opaque", raw)
		}
	}
}

func TestJSNilLiterals(t *testing.T) {
	h := newJS()

	for _, raw := range []string{"null", "undefined"} {
		if pv := h.ParseVariableValue(raw, ""); !pv.IsNil {
			t.Errorf("%q should be nil", raw)
		}
	}
	if h.IsNilValue("None") {
		t.Error("None is not a JavaScript nil")
	}
}

func TestJSPrimitives(t *testing.T) {
	h := newJS()

	for _, v := range []string{"NaN", "Infinity", "-Infinity", "42", "'hi'", "true"} {
		if !h.IsPrimitiveType(v, "") {
			t.Errorf("%q should be primitive", v)
		}
	}
}

func TestJSSetIsCollection(t *testing.T) {
	h := newJS()

	if !h.IsCollectionType("Set(2) {1, 2}", "") {
		t.Error("Set is a collection")
	}
	elems := h.ParseArrayElements("Set(2) {1, 2}")
	if len(elems) != 2 {
		t.Errorf("set elements = %v", elems)
	}
}
