package credential

import (
	"context"
	"sync"

	"github.com/AyoPrez/sobuu-sub000/internal/domain"
)

// MemoryCredentialStore implements Store in process memory.
type MemoryCredentialStore struct {
	m          sync.RWMutex
	credential domain.Credential
}

var _ Store = (*MemoryCredentialStore)(nil)

// NewMemoryCredentialStore creates an empty MemoryCredentialStore.
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{}
}

// Get implements Store.Get.
func (s *MemoryCredentialStore) Get(context.Context) (domain.Credential, bool, error) {
	s.m.RLock()
	defer s.m.RUnlock()

	return s.credential, !s.credential.IsBlank(), nil
}

// Set implements Store.Set.
func (s *MemoryCredentialStore) Set(_ context.Context, credential domain.Credential) error {
	s.m.Lock()
	defer s.m.Unlock()

	if credential.IsBlank() {
		credential = ""
	}

	s.credential = credential

	return nil
}

// Clear implements Store.Clear.
func (s *MemoryCredentialStore) Clear(ctx context.Context) error {
	return s.Set(ctx, "")
}

// Close implements Store.Close.
func (s *MemoryCredentialStore) Close() error {
	return nil
}
