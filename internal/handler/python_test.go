package handler

import (
	"testing"

	"github.com/standardbeagle/varlens/internal/patterns"
	"github.com/standardbeagle/varlens/internal/types"
)

func newPython() *PythonHandler {
	return NewPythonHandler(patterns.ForLanguage(types.LanguagePython))
}

func TestPythonParseDict(t *testing.T) {
	h := newPython()

	raw := `{'name': 'Alice', 'age': 30}`
	pv := h.ParseVariableValue(raw, "dict")
	if !pv.IsExpandable || pv.ObjectKeyCount != 2 {
		t.Fatalf("dict = %+v", pv)
	}

	fields := h.ParseStructFields(raw)
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(fields))
	}
	if fields[0].Name != "name" || fields[0].Raw != "'Alice'" {
		t.Errorf("field 0 = %+v", fields[0])
	}
}

func TestPythonDictVsSet(t *testing.T) {
	h := newPython()

	// Sets share the brace shape with dicts; only ':' pairs make a dict.
	set := h.ParseVariableValue("{1, 2, 3}", "set")
	if set.ObjectKeyCount != types.CountUnknown || set.ArrayLength != 3 {
		t.Errorf("set = %+v", set)
	}

	if h.IsStructuredType("{1, 2, 3}", "") {
		t.Error("a set literal is not structured")
	}
	if !h.IsCollectionType("{1, 2, 3}", "") {
		t.Error("a set literal is a collection")
	}
	if !h.IsStructuredType("{'a': 1}", "") {
		t.Error("a dict literal is structured")
	}
}

func TestPythonParseSequences(t *testing.T) {
	h := newPython()

	list := h.ParseVariableValue("[1, 2, 3]", "list")
	if !list.IsExpandable || list.ArrayLength != 3 {
		t.Errorf("list = %+v", list)
	}

	tuple := h.ParseVariableValue("(1, 'two')", "tuple")
	if !tuple.IsExpandable || tuple.ArrayLength != 2 {
		t.Errorf("tuple = %+v", tuple)
	}

	elems := h.ParseArrayElements("[1, 'a, b', [2, 3]]")
	if len(elems) != 3 || elems[1] != "'a, b'" || elems[2] != "[2, 3]" {
		t.Errorf("nested elements = %v", elems)
	}
}

func TestPythonObjectRepr(t *testing.T) {
	h := newPython()

	pv := h.ParseVariableValue("<Order object at 0x7fab01c3d4>", "Order")
	if !pv.IsPointer || pv.MemoryAddress != "0x7fab01c3d4" {
		t.Errorf("object repr = %+v", pv)
	}
	if pv.IsExpandable {
		t.Error("opaque repr has no children")
	}
}

func TestPythonNone(t *testing.T) {
	h := newPython()

	if pv := h.ParseVariableValue("None", ""); !pv.IsNil {
		t.Error("None should be nil")
	}
	// Other variants' spellings stay opaque primitives here.
	for _, raw := range []string{"nil", "null", "undefined", "nullptr"} {
		if h.IsNilValue(raw) {
			t.Errorf("%q is not a Python None", raw)
		}
	}
}

func TestPythonFormatDisplayValue(t *testing.T) {
	h := newPython()

	if got := h.FormatDisplayValue("'hello'", "str"); got != "hello" {
		t.Errorf("single quoted = %q", got)
	}
	once := h.FormatDisplayValue(`"hi"`, "str")
	if twice := h.FormatDisplayValue(once, "str"); once != twice {
		t.Errorf("not idempotent: %q vs %q", once, twice)
	}
	if got := h.FormatDisplayValue("True", "bool"); got != "True" {
		t.Errorf("bool = %q", got)
	}
}
