package variants

import (
	"github.com/goliatone/go-cms-variants/internal/di"
	"github.com/goliatone/go-cms-variants/internal/fallback"
	"github.com/goliatone/go-cms-variants/internal/groups"
	"github.com/goliatone/go-cms-variants/internal/translate"
	"github.com/goliatone/go-cms-variants/internal/variantconfig"
)

// GroupService exports the variant group service contract.
type GroupService = groups.Service

// ConfigService exports the variant config service contract.
type ConfigService = variantconfig.Service

// TranslateService exports the translation gateway contract.
type TranslateService = translate.Service

// FallbackResolver exports the locale fallback resolver.
type FallbackResolver = fallback.Resolver

// VariantGroup exports the variant group record.
type VariantGroup = groups.VariantGroup

// Locale exports the per-group locale definition.
type Locale = groups.Locale

// VariantConfig exports the stored variant config record.
type VariantConfig = variantconfig.VariantConfig

// ResolveRequest exports the fallback resolution request.
type ResolveRequest = fallback.Request

// ResolveResult exports the fallback resolution result.
type ResolveResult = fallback.Result

// TranslateRequest exports the translation gateway request.
type TranslateRequest = translate.Request

// TranslateResponse exports the translation gateway response.
type TranslateResponse = translate.Response

// VariantParam builds the API parameter encoding a locale and its fallback
// chain, e.g. "mr_hi_en".
func VariantParam(locale string, fallbackChain []string) string {
	return variantconfig.Param(locale, fallbackChain)
}

// Module represents the top level variants runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a variants module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Groups returns the configured variant group service.
func (m *Module) Groups() GroupService {
	return m.container.GroupService()
}

// Configs returns the configured variant config service.
func (m *Module) Configs() ConfigService {
	return m.container.ConfigService()
}

// Resolver returns the locale fallback resolver.
func (m *Module) Resolver() *FallbackResolver {
	return m.container.FallbackResolver()
}

// Translator returns the translation gateway.
func (m *Module) Translator() TranslateService {
	return m.container.TranslateService()
}
