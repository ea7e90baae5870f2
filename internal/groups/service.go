package groups

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Service describes variant group registry capabilities.
type Service interface {
	CreateGroup(ctx context.Context, input CreateGroupInput) (*VariantGroup, error)
	UpdateGroup(ctx context.Context, input UpdateGroupInput) (*VariantGroup, error)
	DeleteGroup(ctx context.Context, id uuid.UUID) error
	GetGroup(ctx context.Context, id uuid.UUID) (*VariantGroup, error)
	GetGroupByName(ctx context.Context, name string) (*VariantGroup, error)
	ListGroups(ctx context.Context) ([]*VariantGroup, error)
}

// LocaleInput captures one locale definition supplied during create or update.
type LocaleInput struct {
	Code      string
	Name      string
	Fallback  []string
	IsDefault bool
}

// CreateGroupInput captures the information required to register a variant group.
type CreateGroupInput struct {
	Name        string
	Description *string
	Locales     []LocaleInput
}

// Validate ensures the input carries the required fields before reaching the service.
func (in CreateGroupInput) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = validation.NewError("variants.groups.name_required", "name is required")
	}
	if len(in.Locales) == 0 {
		errs["locales"] = validation.NewError("variants.groups.locales_required", "at least one locale is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateGroupInput captures mutable variant group fields. Nil fields are
// left untouched; UpdatedAt is always refreshed.
type UpdateGroupInput struct {
	ID          uuid.UUID
	Name        *string
	Description *string
	Locales     []LocaleInput
}

var (
	ErrGroupRepositoryRequired = errors.New("groups: repository required")
	ErrGroupNameRequired       = errors.New("groups: name is required")
	ErrGroupNameExists         = errors.New("groups: name already exists")
	ErrGroupLocalesRequired    = errors.New("groups: at least one locale is required")
	ErrDuplicateLocaleCode     = errors.New("groups: duplicate locale code provided")
	ErrLocaleCodeInvalid       = errors.New("groups: locale code is invalid")
	ErrMultipleDefaultLocales  = errors.New("groups: at most one locale may be flagged default")
	ErrGroupNotFound           = errors.New("groups: variant group not found")
)

// IDGenerator produces identifiers for new variant groups.
type IDGenerator func() uuid.UUID

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithIDGenerator overrides group ID generation.
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
	repo GroupRepository
	id   IDGenerator
	now  func() time.Time
}

// NewService constructs a variant group service instance.
func NewService(repo GroupRepository, opts ...ServiceOption) Service {
	if repo == nil {
		panic(ErrGroupRepositoryRequired)
	}

	s := &service{
		repo: repo,
		id:   uuid.New,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) CreateGroup(ctx context.Context, input CreateGroupInput) (*VariantGroup, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	locales, err := normalizeLocaleInputs(input.Locales)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if existing, err := s.repo.GetByName(ctx, name); err == nil && existing != nil {
		return nil, ErrGroupNameExists
	} else if err != nil {
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			return nil, err
		}
	}

	now := s.now().UTC()
	record := &VariantGroup{
		ID:          s.id(),
		Name:        name,
		Description: cloneString(input.Description),
		Locales:     locales,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return cloneGroup(created), nil
}

func (s *service) UpdateGroup(ctx context.Context, input UpdateGroupInput) (*VariantGroup, error) {
	if input.ID == uuid.Nil {
		return nil, ErrGroupNotFound
	}
	group, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, translateRepoError(err, ErrGroupNotFound)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrGroupNameRequired
		}
		group.Name = name
	}
	if input.Description != nil {
		desc := strings.TrimSpace(*input.Description)
		if desc == "" {
			group.Description = nil
		} else {
			group.Description = &desc
		}
	}
	if input.Locales != nil {
		locales, err := normalizeLocaleInputs(input.Locales)
		if err != nil {
			return nil, err
		}
		group.Locales = locales
	}

	group.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, group)
	if err != nil {
		return nil, translateRepoError(err, ErrGroupNotFound)
	}
	return cloneGroup(updated), nil
}

func (s *service) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrGroupNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return translateRepoError(err, ErrGroupNotFound)
	}
	return nil
}

func (s *service) GetGroup(ctx context.Context, id uuid.UUID) (*VariantGroup, error) {
	if id == uuid.Nil {
		return nil, ErrGroupNotFound
	}
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, ErrGroupNotFound)
	}
	return cloneGroup(group), nil
}

func (s *service) GetGroupByName(ctx context.Context, name string) (*VariantGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrGroupNotFound
	}
	group, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, translateRepoError(err, ErrGroupNotFound)
	}
	return cloneGroup(group), nil
}

func (s *service) ListGroups(ctx context.Context) ([]*VariantGroup, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return cloneGroupSlice(records), nil
}

// normalizeLocaleInputs lowercases codes, validates them as BCP-47 tags, and
// rejects duplicate codes and multiple default flags.
func normalizeLocaleInputs(inputs []LocaleInput) ([]Locale, error) {
	if len(inputs) == 0 {
		return nil, ErrGroupLocalesRequired
	}

	seen := make(map[string]struct{}, len(inputs))
	defaults := 0
	locales := make([]Locale, 0, len(inputs))

	for _, input := range inputs {
		code := normalizeLocaleCode(input.Code)
		if !validLocaleCode(code) {
			return nil, ErrLocaleCodeInvalid
		}
		if _, ok := seen[code]; ok {
			return nil, ErrDuplicateLocaleCode
		}
		seen[code] = struct{}{}

		if input.IsDefault {
			defaults++
			if defaults > 1 {
				return nil, ErrMultipleDefaultLocales
			}
		}

		fallback := make([]string, 0, len(input.Fallback))
		for _, fb := range input.Fallback {
			normalized := normalizeLocaleCode(fb)
			if !validLocaleCode(normalized) {
				return nil, ErrLocaleCodeInvalid
			}
			fallback = append(fallback, normalized)
		}

		name := strings.TrimSpace(input.Name)
		if name == "" {
			name = code
		}

		locales = append(locales, Locale{
			Code:      code,
			Name:      name,
			Fallback:  fallback,
			IsDefault: input.IsDefault,
		})
	}

	return locales, nil
}

func translateRepoError(err error, fallback error) error {
	if err == nil {
		return nil
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return fallback
	}
	return err
}
