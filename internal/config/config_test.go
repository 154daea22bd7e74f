package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/varlens/internal/types"
)

func TestParseKDL(t *testing.T) {
	content := `
defaults {
    max_depth 3
    max_string_length 80
    show_pointer_addresses false
}
language "go" {
    max_array_length 50
    preserve_fields "UserID" "OrderID"
}
language "python" {
    max_object_keys 10
}
patterns {
    application "invoice" "shipment*"
    system "glib*"
    control_flow "cursor"
}
`
	cfg, err := ParseKDL(content)
	require.NoError(t, err)

	require.NotNil(t, cfg.Defaults.MaxDepth)
	assert.Equal(t, 3, *cfg.Defaults.MaxDepth)
	require.NotNil(t, cfg.Defaults.MaxStringLength)
	assert.Equal(t, 80, *cfg.Defaults.MaxStringLength)
	require.NotNil(t, cfg.Defaults.ShowPointerAddresses)
	assert.False(t, *cfg.Defaults.ShowPointerAddresses)
	assert.Nil(t, cfg.Defaults.MaxArrayLength, "unset keys stay nil")

	goOv, ok := cfg.Languages[types.LanguageGo]
	require.True(t, ok)
	require.NotNil(t, goOv.MaxArrayLength)
	assert.Equal(t, 50, *goOv.MaxArrayLength)
	assert.Equal(t, []string{"UserID", "OrderID"}, goOv.PreserveBusinessFields)

	pyOv, ok := cfg.Languages[types.LanguagePython]
	require.True(t, ok)
	require.NotNil(t, pyOv.MaxObjectKeys)
	assert.Equal(t, 10, *pyOv.MaxObjectKeys)

	assert.Equal(t, []string{"invoice", "shipment*"}, cfg.Patterns.Application)
	assert.Equal(t, []string{"glib*"}, cfg.Patterns.System)
	assert.Equal(t, []string{"cursor"}, cfg.Patterns.ControlFlow)
}

func TestParseKDLUnknownLanguageSkipped(t *testing.T) {
	cfg, err := ParseKDL(`language "ruby" { max_depth 2 }`)
	require.NoError(t, err)
	assert.Empty(t, cfg.Languages)
}

func TestParseKDLMalformed(t *testing.T) {
	_, err := ParseKDL(`defaults { max_depth`)
	assert.Error(t, err)
}

func TestParseKDLLanguageAliases(t *testing.T) {
	cfg, err := ParseKDL(`
language "golang" { max_depth 2 }
language "js" { max_depth 3 }
`)
	require.NoError(t, err)

	if _, ok := cfg.Languages[types.LanguageGo]; !ok {
		t.Error("golang alias should map to the Go variant")
	}
	if _, ok := cfg.Languages[types.LanguageJavaScript]; !ok {
		t.Error("js alias should map to the JavaScript variant")
	}
}

func TestOptionsForLayering(t *testing.T) {
	cfg := NewConfig()
	d := 3
	cfg.Defaults.MaxDepth = &d
	a := 50
	cfg.Languages[types.LanguageGo] = OptionsOverride{MaxArrayLength: &a}

	base := types.DefaultSimplificationOptions()
	base.MaxArrayLength = 32

	goOpts := cfg.OptionsFor(types.LanguageGo, base)
	assert.Equal(t, 3, goOpts.MaxDepth, "defaults block applies")
	assert.Equal(t, 50, goOpts.MaxArrayLength, "language block wins")

	javaOpts := cfg.OptionsFor(types.LanguageJava, types.DefaultSimplificationOptions())
	assert.Equal(t, 3, javaOpts.MaxDepth)
	assert.Equal(t, types.DefaultMaxArrayLength, javaOpts.MaxArrayLength, "go block must not leak")
}

func TestApplyClampsBounds(t *testing.T) {
	zero := 0
	neg := -5
	o := OptionsOverride{MaxDepth: &zero, MaxArrayLength: &neg}

	out := o.Apply(types.DefaultSimplificationOptions())
	assert.Equal(t, 1, out.MaxDepth)
	assert.Equal(t, 1, out.MaxArrayLength)
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Nil(t, cfg, "missing file is not an error")
}

func TestLoadProjectOverridesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	content := `
defaults {
    max_depth 2
}
patterns {
    application "shipment"
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg.Defaults.MaxDepth)
	assert.Equal(t, 2, *cfg.Defaults.MaxDepth)
	assert.Contains(t, cfg.Patterns.Application, "shipment")
}

func TestMergeConfigProjectWins(t *testing.T) {
	global := NewConfig()
	g1 := 3
	global.Defaults.MaxDepth = &g1
	g2 := 100
	global.Defaults.MaxStringLength = &g2
	global.Patterns.System = []string{"glib*"}

	project := NewConfig()
	p1 := 5
	project.Defaults.MaxDepth = &p1
	project.Patterns.System = []string{"qt*"}

	merged := global.mergeConfig(project)

	assert.Equal(t, 5, *merged.Defaults.MaxDepth, "project value wins")
	assert.Equal(t, 100, *merged.Defaults.MaxStringLength, "global value survives")
	assert.Equal(t, []string{"glib*", "qt*"}, merged.Patterns.System, "patterns accumulate")
}
