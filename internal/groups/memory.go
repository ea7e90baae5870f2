package groups

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*VariantGroup
	order []uuid.UUID
}

// NewMemoryRepository constructs an in-memory variant group repository.
// List returns groups in insertion order.
func NewMemoryRepository() GroupRepository {
	return &memoryRepository{
		byID: make(map[uuid.UUID]*VariantGroup),
	}
}

func (m *memoryRepository) Create(_ context.Context, group *VariantGroup) (*VariantGroup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneGroup(group)
	if _, exists := m.byID[cloned.ID]; !exists {
		m.order = append(m.order, cloned.ID)
	}
	m.byID[cloned.ID] = cloned
	return cloneGroup(cloned), nil
}

func (m *memoryRepository) Update(_ context.Context, group *VariantGroup) (*VariantGroup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[group.ID]; !ok {
		return nil, &NotFoundError{Resource: "variant_group", Key: group.ID.String()}
	}
	cloned := cloneGroup(group)
	m.byID[cloned.ID] = cloned
	return cloneGroup(cloned), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*VariantGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "variant_group", Key: id.String()}
	}
	return cloneGroup(record), nil
}

func (m *memoryRepository) GetByName(_ context.Context, name string) (*VariantGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		if record := m.byID[id]; record != nil && record.Name == name {
			return cloneGroup(record), nil
		}
	}
	return nil, &NotFoundError{Resource: "variant_group", Key: name}
}

func (m *memoryRepository) List(_ context.Context) ([]*VariantGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*VariantGroup, 0, len(m.order))
	for _, id := range m.order {
		if record := m.byID[id]; record != nil {
			records = append(records, cloneGroup(record))
		}
	}
	return records, nil
}

func (m *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &NotFoundError{Resource: "variant_group", Key: id.String()}
	}
	delete(m.byID, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
