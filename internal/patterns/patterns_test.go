package patterns

import (
	"testing"

	"github.com/standardbeagle/varlens/internal/types"
)

func TestMatchesAny(t *testing.T) {
	app := []string{"user", "account", "invoice"}

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"pattern inside name", "currentUser", true},
		{"case insensitive", "ACCOUNT_ID", true},
		{"name inside pattern", "invo", true},
		{"short name no reverse match", "i", false},
		{"no match", "tmpBuf", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesAny(tt.input, app); got != tt.want {
				t.Errorf("MatchesAny(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMatchesAnyGlob(t *testing.T) {
	pats := []string{"shipment*", "ord?r"}

	if !MatchesAny("shipmentQueue", pats) {
		t.Error("glob prefix pattern should match")
	}
	if !MatchesAny("order", pats) {
		t.Error("single-char glob should match")
	}
	if MatchesAny("reorder", pats) {
		t.Error("glob matches the whole name, not a substring")
	}
}

func TestContainsAnyShortPatterns(t *testing.T) {
	// One and two character patterns match only exactly; otherwise "i"
	// would flag nearly every name as control flow.
	cf := []string{"i", "g0", "index"}

	if !ContainsAny("i", cf) {
		t.Error("exact short pattern should match")
	}
	if ContainsAny("invoice", cf) {
		t.Error("short pattern must not substring-match")
	}
	if !ContainsAny("rowIndex", cf) {
		t.Error("long pattern matches by substring")
	}
}

func TestForLanguageTables(t *testing.T) {
	for _, lang := range types.AllLanguages {
		ps := ForLanguage(lang)
		if len(ps.ApplicationNames) == 0 {
			t.Errorf("%s: empty application table", lang)
		}
		if len(ps.SystemNames) == 0 {
			t.Errorf("%s: empty system table", lang)
		}
		if ps.LongNameThreshold <= 0 {
			t.Errorf("%s: missing long name threshold", lang)
		}
	}
}

func TestSystemTablesAreVariantSpecific(t *testing.T) {
	goPS := ForLanguage(types.LanguageGo)
	pyPS := ForLanguage(types.LanguagePython)

	if !ContainsAny("runtime.g0", goPS.SystemNames) {
		t.Error("Go runtime internals should be system noise for Go")
	}
	if ContainsAny("runtime.g0", pyPS.SystemNames) {
		t.Error("Go runtime internals are not Python noise")
	}
	if !ContainsAny("__builtins__", pyPS.SystemNames) {
		t.Error("Python dunders should be system noise for Python")
	}
}

func TestExtendDoesNotMutateReceiver(t *testing.T) {
	base := ForLanguage(types.LanguageGo)
	baseLen := len(base.ApplicationNames)

	ext := base.Extend([]string{"shipment"}, []string{"glib*"}, nil)

	if len(base.ApplicationNames) != baseLen {
		t.Fatal("Extend mutated the receiver")
	}
	if !MatchesAny("shipmentID", ext.ApplicationNames) {
		t.Error("extended application pattern not matched")
	}
	if !ContainsAny("glib_main_loop", ext.SystemNames) {
		t.Error("extended glob system pattern not matched")
	}
}

func TestHasAnyPrefix(t *testing.T) {
	prefixes := []string{"__", "~"}

	if !HasAnyPrefix("__internal_tmp", prefixes) {
		t.Error("dunder prefix should match")
	}
	if HasAnyPrefix("x__y", prefixes) {
		t.Error("prefix must anchor at the start")
	}
}
