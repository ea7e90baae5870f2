package variantconfig

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-cms-variants/internal/groups"
	"github.com/google/uuid"
)

// Service exposes variant configuration use-cases.
type Service interface {
	CreateConfig(ctx context.Context, input CreateConfigInput) (*VariantConfig, error)
	UpsertConfig(ctx context.Context, input CreateConfigInput) (*VariantConfig, error)
	BulkCreate(ctx context.Context, input BulkCreateInput) ([]*VariantConfig, error)
	FindByEntry(ctx context.Context, entryUID, contentTypeUID string) ([]*VariantConfig, error)
	FindByEntryLocale(ctx context.Context, entryUID, contentTypeUID, locale string) (*VariantConfig, error)
	UpdateConfig(ctx context.Context, input UpdateConfigInput) (*VariantConfig, error)
	DeleteConfig(ctx context.Context, entryUID, contentTypeUID, locale string) error
}

// GroupResolver resolves variant groups referenced by configs. The groups
// repository satisfies this contract.
type GroupResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*groups.VariantGroup, error)
}

// CreateConfigInput captures the payload required to store a variant config.
type CreateConfigInput struct {
	GroupID        uuid.UUID
	EntryUID       string
	ContentTypeUID string
	Locale         string
	Content        map[string]any
	FallbackChain  []string
	IsTranslated   bool
}

// Validate ensures the input carries the required identifiers.
func (in CreateConfigInput) Validate() error {
	errs := validation.Errors{}
	if in.GroupID == uuid.Nil {
		errs["group_id"] = validation.NewError("variants.configs.group_required", "group_id is required")
	}
	if strings.TrimSpace(in.EntryUID) == "" {
		errs["entry_uid"] = validation.NewError("variants.configs.entry_required", "entry_uid is required")
	}
	if strings.TrimSpace(in.ContentTypeUID) == "" {
		errs["content_type_uid"] = validation.NewError("variants.configs.content_type_required", "content_type_uid is required")
	}
	if strings.TrimSpace(in.Locale) == "" {
		errs["locale"] = validation.NewError("variants.configs.locale_required", "locale is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BulkCreateInput captures the payload for materializing empty configs across
// entries and locales.
type BulkCreateInput struct {
	EntryUIDs      []string
	ContentTypeUID string
	GroupID        uuid.UUID
	Locales        []string
}

// Validate ensures the bulk request carries the required identifiers.
func (in BulkCreateInput) Validate() error {
	errs := validation.Errors{}
	if len(in.EntryUIDs) == 0 {
		errs["entry_uids"] = validation.NewError("variants.configs.entries_required", "at least one entry uid is required")
	}
	if strings.TrimSpace(in.ContentTypeUID) == "" {
		errs["content_type_uid"] = validation.NewError("variants.configs.content_type_required", "content_type_uid is required")
	}
	if in.GroupID == uuid.Nil {
		errs["group_id"] = validation.NewError("variants.configs.group_required", "group_id is required")
	}
	if len(in.Locales) == 0 {
		errs["locales"] = validation.NewError("variants.configs.locales_required", "at least one locale is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateConfigInput captures mutable config fields. Nil fields are untouched;
// LastModified is always refreshed.
type UpdateConfigInput struct {
	EntryUID       string
	ContentTypeUID string
	Locale         string
	Content        map[string]any
	IsTranslated   *bool
}

var (
	ErrConfigRepositoryRequired = errors.New("variantconfig: repository required")
	ErrGroupResolverRequired    = errors.New("variantconfig: group resolver required")
	ErrConfigExists             = errors.New("variantconfig: config already exists for key")
	ErrConfigNotFound           = errors.New("variantconfig: config not found")
	ErrVariantGroupNotFound     = errors.New("variantconfig: variant group not found")
)

// IDGenerator produces identifiers for new variant configs.
type IDGenerator func() uuid.UUID

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithIDGenerator overrides config ID generation.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithNow overrides the time source (primarily for tests).
func WithNow(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

type service struct {
	repo   ConfigRepository
	groups GroupResolver
	id     IDGenerator
	now    func() time.Time
}

// NewService constructs a variant config service instance.
func NewService(repo ConfigRepository, resolver GroupResolver, opts ...ServiceOption) Service {
	if repo == nil {
		panic(ErrConfigRepositoryRequired)
	}
	if resolver == nil {
		panic(ErrGroupResolverRequired)
	}

	s := &service{
		repo:   repo,
		groups: resolver,
		id:     uuid.New,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) CreateConfig(ctx context.Context, input CreateConfigInput) (*VariantConfig, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	record := s.buildRecord(input)
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpsertConfig stores a config, replacing any existing record under the same key.
func (s *service) UpsertConfig(ctx context.Context, input CreateConfigInput) (*VariantConfig, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	record := s.buildRecord(input)
	if existing, err := s.repo.GetByKey(ctx, KeyOf(record)); err == nil && existing != nil {
		record.ID = existing.ID
		return s.repo.Update(ctx, record)
	} else if err != nil {
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			return nil, err
		}
	}
	return s.repo.Create(ctx, record)
}

// BulkCreate materializes empty-content configs for every entry/locale pair
// where the locale exists in the group. Unknown locale codes are skipped, as
// are keys that already hold a config.
func (s *service) BulkCreate(ctx context.Context, input BulkCreateInput) ([]*VariantConfig, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	group, err := s.groups.GetByID(ctx, input.GroupID)
	if err != nil {
		return nil, translateGroupError(err)
	}

	now := s.now().UTC()
	created := make([]*VariantConfig, 0, len(input.EntryUIDs)*len(input.Locales))

	for _, entryUID := range input.EntryUIDs {
		for _, code := range input.Locales {
			locale, ok := group.LocaleByCode(code)
			if !ok {
				continue
			}

			key := NewKey(entryUID, input.ContentTypeUID, locale.Code)
			if _, err := s.repo.GetByKey(ctx, key); err == nil {
				continue
			} else {
				var nf *NotFoundError
				if !errors.As(err, &nf) {
					return nil, err
				}
			}

			record := &VariantConfig{
				ID:             s.id(),
				GroupID:        input.GroupID,
				EntryUID:       key.EntryUID,
				ContentTypeUID: key.ContentTypeUID,
				Locale:         key.Locale,
				VariantParam:   Param(locale.Code, locale.Fallback),
				Content:        map[string]any{},
				FallbackChain:  append([]string(nil), locale.Fallback...),
				IsTranslated:   false,
				LastModified:   now,
			}

			stored, err := s.repo.Create(ctx, record)
			if err != nil {
				return nil, err
			}
			created = append(created, stored)
		}
	}

	return created, nil
}

func (s *service) FindByEntry(ctx context.Context, entryUID, contentTypeUID string) ([]*VariantConfig, error) {
	records, err := s.repo.FindByEntry(ctx, entryUID, contentTypeUID)
	if err != nil {
		return nil, err
	}
	return cloneConfigSlice(records), nil
}

func (s *service) FindByEntryLocale(ctx context.Context, entryUID, contentTypeUID, locale string) (*VariantConfig, error) {
	record, err := s.repo.GetByKey(ctx, NewKey(entryUID, contentTypeUID, locale))
	if err != nil {
		return nil, translateConfigError(err)
	}
	return record, nil
}

func (s *service) UpdateConfig(ctx context.Context, input UpdateConfigInput) (*VariantConfig, error) {
	key := NewKey(input.EntryUID, input.ContentTypeUID, input.Locale)
	record, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, translateConfigError(err)
	}

	if input.Content != nil {
		record.Content = cloneContentMap(input.Content)
	}
	if input.IsTranslated != nil {
		record.IsTranslated = *input.IsTranslated
	}
	record.LastModified = s.now().UTC()

	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return nil, translateConfigError(err)
	}
	return updated, nil
}

func (s *service) DeleteConfig(ctx context.Context, entryUID, contentTypeUID, locale string) error {
	if err := s.repo.Delete(ctx, NewKey(entryUID, contentTypeUID, locale)); err != nil {
		return translateConfigError(err)
	}
	return nil
}

func (s *service) buildRecord(input CreateConfigInput) *VariantConfig {
	key := NewKey(input.EntryUID, input.ContentTypeUID, input.Locale)
	chain := append([]string(nil), input.FallbackChain...)

	content := cloneContentMap(input.Content)
	if content == nil {
		content = map[string]any{}
	}

	return &VariantConfig{
		ID:             s.id(),
		GroupID:        input.GroupID,
		EntryUID:       key.EntryUID,
		ContentTypeUID: key.ContentTypeUID,
		Locale:         key.Locale,
		VariantParam:   Param(key.Locale, chain),
		Content:        content,
		FallbackChain:  chain,
		IsTranslated:   input.IsTranslated,
		LastModified:   s.now().UTC(),
	}
}

func translateConfigError(err error) error {
	if err == nil {
		return nil
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return ErrConfigNotFound
	}
	return err
}

func translateGroupError(err error) error {
	if err == nil {
		return nil
	}
	var nf *groups.NotFoundError
	if errors.As(err, &nf) {
		return ErrVariantGroupNotFound
	}
	return err
}
