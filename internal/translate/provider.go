package translate

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-cms-variants/pkg/interfaces"
)

// Registry holds the configured translation providers keyed by name. The
// first provider registered becomes the default unless SetDefault overrides
// it.
type Registry struct {
	mu          sync.RWMutex
	providers   map[string]interfaces.TranslationProvider
	defaultName string
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]interfaces.TranslationProvider)}
}

// Register adds a provider under its reported name. Registering a provider
// with an existing name replaces the previous one.
func (r *Registry) Register(provider interfaces.TranslationProvider) {
	if provider == nil {
		return
	}
	name := strings.ToLower(strings.TrimSpace(provider.Name()))
	if name == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers[name] = provider
	if r.defaultName == "" {
		r.defaultName = name
	}
}

// SetDefault selects the provider used when requests do not name one.
func (r *Registry) SetDefault(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("%w: %s", ErrProviderUnknown, name)
	}
	r.defaultName = name
	return nil
}

// Get returns the named provider, or the default provider when name is
// empty. A nil provider with a nil error means no provider is configured.
func (r *Registry) Get(name string) (interfaces.TranslationProvider, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		if r.defaultName == "" {
			return nil, nil
		}
		return r.providers[r.defaultName], nil
	}

	provider, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderUnknown, name)
	}
	return provider, nil
}

// Names returns the registered provider names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

// ProviderFunc adapts a translate function into a TranslationProvider.
type ProviderFunc struct {
	ProviderName string
	Fn           func(ctx context.Context, text, sourceLocale, targetLocale string) (string, error)
}

func (p ProviderFunc) Name() string { return p.ProviderName }

func (p ProviderFunc) Translate(ctx context.Context, text, sourceLocale, targetLocale string) (string, error) {
	return p.Fn(ctx, text, sourceLocale, targetLocale)
}
