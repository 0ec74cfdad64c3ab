package tokenstore

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store. Errors set on it are returned by the
// matching method until cleared, which lets tests simulate a broken keychain.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	set   bool

	GetErr    error
	SetErr    error
	DeleteErr error

	SetCalls    int
	DeleteCalls int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(ctx context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	return m.token, m.set, nil
}

func (m *MemoryStore) Set(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.token, m.set = token, true
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.token, m.set = "", false
	return nil
}
