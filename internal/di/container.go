package di

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-cms-variants/internal/fallback"
	"github.com/goliatone/go-cms-variants/internal/groups"
	"github.com/goliatone/go-cms-variants/internal/logging"
	"github.com/goliatone/go-cms-variants/internal/logging/console"
	"github.com/goliatone/go-cms-variants/internal/logging/gologger"
	"github.com/goliatone/go-cms-variants/internal/runtimeconfig"
	"github.com/goliatone/go-cms-variants/internal/translate"
	"github.com/goliatone/go-cms-variants/internal/variantconfig"
	"github.com/goliatone/go-cms-variants/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// Container wires module dependencies from a single runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider

	groupRepo  groups.GroupRepository
	configRepo variantconfig.ConfigRepository

	registry  *translate.Registry
	providers []interfaces.TranslationProvider
	detector  interfaces.LanguageDetector

	now func() time.Time

	groupSvc     groups.Service
	configSvc    variantconfig.Service
	resolver     *fallback.Resolver
	translateSvc translate.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds a bun database so repositories persist instead of using
// the in-memory defaults.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default repository cache bindings.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the logger provider derived from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithGroupRepository overrides the default group repository binding.
func WithGroupRepository(repo groups.GroupRepository) Option {
	return func(c *Container) {
		c.groupRepo = repo
	}
}

// WithConfigRepository overrides the default config repository binding.
func WithConfigRepository(repo variantconfig.ConfigRepository) Option {
	return func(c *Container) {
		c.configRepo = repo
	}
}

// WithTranslationProvider registers an additional translation provider on top
// of the ones derived from configuration.
func WithTranslationProvider(provider interfaces.TranslationProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.providers = append(c.providers, provider)
		}
	}
}

// WithLanguageDetector overrides the detector used by the translation service.
func WithLanguageDetector(detector interfaces.LanguageDetector) Option {
	return func(c *Container) {
		c.detector = detector
	}
}

// WithGroupService overrides the default group service binding.
func WithGroupService(svc groups.Service) Option {
	return func(c *Container) {
		c.groupSvc = svc
	}
}

// WithConfigService overrides the default config service binding.
func WithConfigService(svc variantconfig.Service) Option {
	return func(c *Container) {
		c.configSvc = svc
	}
}

// WithNow overrides the clock shared by the constructed services.
func WithNow(now func() time.Time) Option {
	return func(c *Container) {
		if now != nil {
			c.now = now
		}
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("variants container: %w", err)
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:     cfg,
		cacheTTL:   cacheTTL,
		groupRepo:  groups.NewMemoryRepository(),
		configRepo: variantconfig.NewMemoryRepository(),
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureTranslation()

	if c.groupSvc == nil {
		c.groupSvc = groups.NewService(c.groupRepo, groups.WithNow(c.now))
	}

	if c.configSvc == nil {
		c.configSvc = variantconfig.NewService(c.configRepo, c.groupRepo, variantconfig.WithNow(c.now))
	}

	if c.resolver == nil {
		c.resolver = fallback.NewResolver(c.groupRepo, c.configRepo,
			fallback.WithLogger(logging.FallbackLogger(c.loggerProvider)))
	}

	if c.translateSvc == nil {
		translateOpts := []translate.Option{
			translate.WithLogger(logging.TranslateLogger(c.loggerProvider)),
			translate.WithNow(c.now),
		}
		if c.detector != nil {
			translateOpts = append(translateOpts, translate.WithDetector(c.detector))
		}
		c.translateSvc = translate.NewService(c.registry, translateOpts...)
	}

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return fmt.Errorf("variants container: %w", err)
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = console.NewProvider(console.Options{})
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}

	c.groupRepo = groups.NewBunGroupRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.configRepo = variantconfig.NewBunConfigRepository(c.bunDB)
}

func (c *Container) configureTranslation() {
	if c.registry == nil {
		c.registry = translate.NewRegistry()
	}

	if c.Config.Features.AITranslation {
		if oa := c.Config.Translation.OpenAI; oa.Enabled {
			provider := translate.NewOpenAIProvider(translate.OpenAIConfig{
				APIKey:      oa.APIKey,
				Model:       oa.Model,
				Temperature: oa.Temperature,
				MaxRetries:  oa.MaxRetries,
			})
			c.registry.Register(provider)
			if c.detector == nil {
				c.detector = provider
			}
		}
		if an := c.Config.Translation.Anthropic; an.Enabled {
			c.registry.Register(translate.NewAnthropicProvider(translate.AnthropicConfig{
				APIKey:      an.APIKey,
				Model:       an.Model,
				MaxTokens:   an.MaxTokens,
				Temperature: an.Temperature,
				MaxRetries:  an.MaxRetries,
			}))
		}
	}

	for _, provider := range c.providers {
		c.registry.Register(provider)
	}

	if name := strings.TrimSpace(c.Config.Translation.DefaultProvider); name != "" {
		// Unknown defaults were already rejected by Config.Validate; a
		// missing registration just keeps the first registered provider.
		_ = c.registry.SetDefault(name)
	}
}

// LoggerProvider exposes the configured logger provider, which is nil when
// logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// GroupRepository exposes the configured group repository.
func (c *Container) GroupRepository() groups.GroupRepository {
	return c.groupRepo
}

// ConfigRepository exposes the configured config repository.
func (c *Container) ConfigRepository() variantconfig.ConfigRepository {
	return c.configRepo
}

// GroupService exposes the variant group service.
func (c *Container) GroupService() groups.Service {
	return c.groupSvc
}

// ConfigService exposes the variant config service.
func (c *Container) ConfigService() variantconfig.Service {
	return c.configSvc
}

// FallbackResolver exposes the locale fallback resolver.
func (c *Container) FallbackResolver() *fallback.Resolver {
	return c.resolver
}

// TranslateService exposes the translation gateway.
func (c *Container) TranslateService() translate.Service {
	return c.translateSvc
}

// ProviderRegistry exposes the translation provider registry.
func (c *Container) ProviderRegistry() *translate.Registry {
	return c.registry
}
