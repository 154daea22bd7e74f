package handler

import (
	"sync"

	"github.com/standardbeagle/varlens/internal/config"
	"github.com/standardbeagle/varlens/internal/errors"
	"github.com/standardbeagle/varlens/internal/patterns"
	"github.com/standardbeagle/varlens/internal/types"
)

// Registry owns one handler per language and the effective
// simplification options for each: variant defaults overlaid with the
// session config. Handlers are immutable; Reload swaps whole instances
// under the lock, so readers never observe a half-built handler.
type Registry struct {
	mu       sync.RWMutex
	handlers map[types.Language]LanguageHandler
	options  map[types.Language]types.SimplificationOptions
}

// NewRegistry builds all five handlers with the given config. A nil
// config means built-in defaults.
func NewRegistry(cfg *config.Config) *Registry {
	r := &Registry{}
	r.Reload(cfg)
	return r
}

// Reload rebuilds handlers and options from a fresh config. Wired as
// the config watcher callback.
func (r *Registry) Reload(cfg *config.Config) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	handlers := make(map[types.Language]LanguageHandler, len(types.AllLanguages))
	options := make(map[types.Language]types.SimplificationOptions, len(types.AllLanguages))
	for _, lang := range types.AllLanguages {
		ps := patterns.ForLanguage(lang).Extend(
			cfg.Patterns.Application,
			cfg.Patterns.System,
			cfg.Patterns.ControlFlow,
		)
		h := newHandlerFor(lang, ps)
		handlers[lang] = h
		options[lang] = cfg.OptionsFor(lang, h.GetDefaultConfig())
	}

	r.mu.Lock()
	r.handlers = handlers
	r.options = options
	r.mu.Unlock()
}

func newHandlerFor(lang types.Language, ps patterns.PatternSet) LanguageHandler {
	switch lang {
	case types.LanguageCPP:
		return NewCPPHandler(ps)
	case types.LanguageGo:
		return NewGoHandler(ps)
	case types.LanguagePython:
		return NewPythonHandler(ps)
	case types.LanguageJava:
		return NewJavaHandler(ps)
	default:
		return NewJavaScriptHandler(ps)
	}
}

// Handler returns the active handler for a language.
func (r *Registry) Handler(lang types.Language) (LanguageHandler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[lang]
	if !ok {
		return nil, errors.NewHandlerError(string(lang))
	}
	return h, nil
}

// Options returns the effective simplification options for a language.
// Unknown languages get the variant-independent defaults.
func (r *Registry) Options(lang types.Language) types.SimplificationOptions {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if opts, ok := r.options[lang]; ok {
		return opts
	}
	return types.DefaultSimplificationOptions()
}
