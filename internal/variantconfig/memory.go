package variantconfig

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	byKey map[Key]*VariantConfig
	order []Key
}

// NewMemoryRepository constructs an in-memory variant config repository.
// FindByEntry returns configs in insertion order.
func NewMemoryRepository() ConfigRepository {
	return &memoryRepository{
		byKey: make(map[Key]*VariantConfig),
	}
}

func (m *memoryRepository) Create(_ context.Context, cfg *VariantConfig) (*VariantConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := KeyOf(cfg)
	if _, exists := m.byKey[key]; exists {
		return nil, &ConflictError{Key: key}
	}

	cloned := cloneConfig(cfg)
	m.byKey[key] = cloned
	m.order = append(m.order, key)
	return cloneConfig(cloned), nil
}

func (m *memoryRepository) Update(_ context.Context, cfg *VariantConfig) (*VariantConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := KeyOf(cfg)
	if _, ok := m.byKey[key]; !ok {
		return nil, &NotFoundError{Resource: "variant_config", Key: keyString(key)}
	}
	cloned := cloneConfig(cfg)
	m.byKey[key] = cloned
	return cloneConfig(cloned), nil
}

func (m *memoryRepository) GetByKey(_ context.Context, key Key) (*VariantConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byKey[key]
	if !ok {
		return nil, &NotFoundError{Resource: "variant_config", Key: keyString(key)}
	}
	return cloneConfig(record), nil
}

func (m *memoryRepository) FindByEntry(_ context.Context, entryUID, contentTypeUID string) ([]*VariantConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	probe := NewKey(entryUID, contentTypeUID, "")
	records := make([]*VariantConfig, 0)
	for _, key := range m.order {
		if key.EntryUID != probe.EntryUID || key.ContentTypeUID != probe.ContentTypeUID {
			continue
		}
		if record := m.byKey[key]; record != nil {
			records = append(records, cloneConfig(record))
		}
	}
	return records, nil
}

func (m *memoryRepository) Delete(_ context.Context, key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byKey[key]; !ok {
		return &NotFoundError{Resource: "variant_config", Key: keyString(key)}
	}
	delete(m.byKey, key)
	for i, existing := range m.order {
		if existing == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func cloneConfig(cfg *VariantConfig) *VariantConfig {
	if cfg == nil {
		return nil
	}
	cloned := *cfg
	cloned.Content = cloneContentMap(cfg.Content)
	if len(cfg.FallbackChain) > 0 {
		cloned.FallbackChain = append([]string(nil), cfg.FallbackChain...)
	}
	return &cloned
}

func cloneConfigSlice(src []*VariantConfig) []*VariantConfig {
	if len(src) == 0 {
		return nil
	}
	out := make([]*VariantConfig, len(src))
	for i, cfg := range src {
		out[i] = cloneConfig(cfg)
	}
	return out
}

// cloneContentMap deep-copies a content tree. Values are either string leaves
// or nested maps; anything else is copied by reference.
func cloneContentMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		if nested, ok := v.(map[string]any); ok {
			out[k] = cloneContentMap(nested)
			continue
		}
		out[k] = v
	}
	return out
}
