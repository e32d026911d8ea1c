package store

import (
	"context"
	"sync"

	"demo/foodorders/internal/model"
)

type Memory struct {
	mu   sync.RWMutex
	data map[string]model.Order
}

func NewMemory() *Memory { return &Memory{data: make(map[string]model.Order)} }

func (m *Memory) UpsertOrder(_ context.Context, o model.Order) error {
	m.mu.Lock()
	m.data[o.OrderID] = o
	m.mu.Unlock()
	return nil
}

func (m *Memory) GetOrder(_ context.Context, orderID string) (model.Order, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.data[orderID]
	return o, ok, nil
}
