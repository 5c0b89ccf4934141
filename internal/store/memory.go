package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-memory Store used by tests and keyless local runs.
type Memory struct {
	mu    sync.RWMutex
	creds map[uuid.UUID]map[string]map[string]string
	users map[uuid.UUID]User
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		creds: make(map[uuid.UUID]map[string]map[string]string),
		users: make(map[uuid.UUID]User),
	}
}

// GetCredentials returns a copy of the stored credential map, or (nil, nil)
// when the integration has not been configured.
func (m *Memory) GetCredentials(_ context.Context, userID uuid.UUID, integration string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	integrations, ok := m.creds[userID]
	if !ok {
		return nil, nil
	}
	stored, ok := integrations[integration]
	if !ok {
		return nil, nil
	}

	out := make(map[string]string, len(stored))
	for k, v := range stored {
		out[k] = v
	}
	return out, nil
}

// SaveCredentials stores a copy of the credential map.
func (m *Memory) SaveCredentials(_ context.Context, userID uuid.UUID, integration string, creds map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.creds[userID] == nil {
		m.creds[userID] = make(map[string]map[string]string)
	}
	stored := make(map[string]string, len(creds))
	for k, v := range creds {
		stored[k] = v
	}
	m.creds[userID][integration] = stored
	return nil
}

// CreateUser inserts a new user record.
func (m *Memory) CreateUser(_ context.Context, name, email, passwordHash string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	user := User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.users[user.ID] = user
	return &user, nil
}

// GetUserByEmail retrieves a user by email. Returns (nil, nil) when absent.
func (m *Memory) GetUserByEmail(_ context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

// GetUserByID retrieves a user by ID. Returns (nil, nil) when absent.
func (m *Memory) GetUserByID(_ context.Context, id uuid.UUID) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}
