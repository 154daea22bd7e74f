package classify

import (
	"testing"

	"github.com/standardbeagle/varlens/internal/patterns"
	"github.com/standardbeagle/varlens/internal/types"
)

func newTestClassifier(lang types.Language) *Classifier {
	return New(lang, patterns.ForLanguage(lang))
}

func TestIsSystemVariable(t *testing.T) {
	tests := []struct {
		lang  types.Language
		name  string
		value string
		want  bool
	}{
		{types.LanguageGo, "runtime.g0", "", true},
		{types.LanguageGo, "userAccount", "", false},
		{types.LanguageGo, "x", "runtime.gopark(...)", true},
		{types.LanguageCPP, "__gnu_cxx::something", "", true},
		{types.LanguageCPP, "order", "", false},
		{types.LanguagePython, "__builtins__", "", true},
		{types.LanguageJava, "this$0", "", true},
		{types.LanguageJavaScript, "__proto__", "", true},
	}

	for _, tt := range tests {
		c := newTestClassifier(tt.lang)
		if got := c.IsSystemVariable(tt.name, tt.value); got != tt.want {
			t.Errorf("%s: IsSystemVariable(%q, %q) = %v, want %v",
				tt.lang, tt.name, tt.value, got, tt.want)
		}
	}
}

func TestIsApplicationRelevant(t *testing.T) {
	c := newTestClassifier(types.LanguageGo)

	tests := []struct {
		name  string
		vn    string
		value string
		want  bool
	}{
		{"business name", "currentUser", "", true},
		{"stemmed plural", "orders", "", true},
		{"typo'd business name", "accuont", "", true},
		{"system is never relevant", "runtime.g0", `{"data": 1}`, false},
		{"meaningful value rescues plain name", "x7", `"hello world"`, true},
		{"nil value is not meaningful", "zz", "nil", false},
		{"address value is not meaningful", "zz", "0xc0000140a0", false},
		{"optimized out is not meaningful", "zz", "<optimized out>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsApplicationRelevant(tt.vn, tt.value); got != tt.want {
				t.Errorf("IsApplicationRelevant(%q, %q) = %v, want %v",
					tt.vn, tt.value, got, tt.want)
			}
		})
	}
}

func TestIsControlFlowVariable(t *testing.T) {
	c := newTestClassifier(types.LanguageGo)

	if !c.IsControlFlowVariable("i") {
		t.Error("bare i is control flow")
	}
	if !c.IsControlFlowVariable("rowIndex") {
		t.Error("index names are control flow")
	}
	if c.IsControlFlowVariable("invoice") {
		t.Error("short control-flow patterns must not substring-match")
	}
}

func TestImportanceOrdering(t *testing.T) {
	// The business variable must outrank the internal temporary in every
	// variant; the weights differ but the order is the contract.
	for _, lang := range types.AllLanguages {
		c := newTestClassifier(lang)
		app := c.Importance("userAccount", `{id: 7, name: "A"}`)
		internal := c.Importance("__internal_tmp", "0x7fff0000")
		if app <= internal {
			t.Errorf("%s: userAccount (%d) must outrank __internal_tmp (%d)",
				lang, app, internal)
		}
	}
}

func TestImportanceWeights(t *testing.T) {
	c := newTestClassifier(types.LanguageGo)

	tests := []struct {
		name string
		a    string
		aVal string
		b    string
		bVal string
	}{
		{"application beats plain", "orderTotal", "99.5", "qqz", "99.5"},
		{"control flow beats system", "idx", "3", "runtime.mheap", "3"},
		{"meaningful value beats address", "blob1", `"payload"`, "blob2", "0xdeadbeef"},
		{"aggregate beats scalar for same name class", "qqza", "{a: 1}", "qqzb", "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sa := c.Importance(tt.a, tt.aVal)
			sb := c.Importance(tt.b, tt.bVal)
			if sa <= sb {
				t.Errorf("Importance(%q)=%d must exceed Importance(%q)=%d",
					tt.a, sa, tt.b, sb)
			}
		})
	}
}

func TestSevereInternalOutweighsPrefix(t *testing.T) {
	c := newTestClassifier(types.LanguageGo)

	severe := c.Importance(".autotmp_4", "")
	prefixed := c.Importance("~tmp", "")
	if severe >= prefixed {
		t.Errorf("severe internal (%d) must score below plain internal prefix (%d)",
			severe, prefixed)
	}
}

func TestRankVariables(t *testing.T) {
	c := newTestClassifier(types.LanguageGo)

	vars := []types.Variable{
		{Name: "runtime.g0", Value: "0xc000000180"},
		{Name: "userAccount", Value: `{id: 7}`},
		{Name: "i", Value: "3"},
		{Name: ".autotmp_2", Value: ""},
	}

	scored := c.RankVariables(vars, 0)
	if len(scored) != len(vars) {
		t.Fatalf("got %d results, want %d", len(scored), len(vars))
	}
	if scored[0].Variable.Name != "userAccount" {
		t.Errorf("top variable = %q, want userAccount", scored[0].Variable.Name)
	}
	if scored[len(scored)-1].Variable.Name == "userAccount" {
		t.Error("business variable ranked last")
	}
	for i := 1; i < len(scored); i++ {
		if scored[i].Score > scored[i-1].Score {
			t.Fatal("results not sorted by descending score")
		}
	}

	top2 := c.RankVariables(vars, 2)
	if len(top2) != 2 {
		t.Fatalf("topN: got %d results, want 2", len(top2))
	}
	if !top2[0].Application {
		t.Error("top result should carry the application tag")
	}
}

func TestNameSplitter(t *testing.T) {
	s := newNameSplitter()

	tests := []struct {
		input string
		want  []string
	}{
		{"currentUserName", []string{"current", "user", "name"}},
		{"user_account_id", []string{"user", "account", "id"}},
		{"order-total", []string{"order", "total"}},
		{"HTTPServer", []string{"http", "server"}},
		{"user2", []string{"user", "2"}},
	}

	for _, tt := range tests {
		got := s.split(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("split(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("split(%q) = %v, want %v", tt.input, got, tt.want)
				break
			}
		}
	}
}
