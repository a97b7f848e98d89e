package credential

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/AyoPrez/sobuu-sub000/internal/domain"
)

// ErrEmptyPassphrase is returned when an encrypted store is created without a passphrase.
var ErrEmptyPassphrase = errors.New("empty passphrase")

const (
	keyDerivationSalt = "sobuu.credential.v1"
	keyDerivationInfo = "xchacha20poly1305"
)

// EncryptedCredentialStore wraps another Store and seals the credential with
// XChaCha20-Poly1305 before it reaches the backing store.
// The stored value is base64url(nonce || ciphertext).
type EncryptedCredentialStore struct {
	inner Store
	aead  cipher.AEAD
}

var _ Store = (*EncryptedCredentialStore)(nil)

// NewEncryptedCredentialStore derives a key from passphrase with HKDF-SHA256 and
// wraps inner. The store takes ownership of inner and closes it on Close.
func NewEncryptedCredentialStore(inner Store, passphrase string) (*EncryptedCredentialStore, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}

	key := make([]byte, chacha20poly1305.KeySize)

	kdf := hkdf.New(sha256.New, []byte(passphrase), []byte(keyDerivationSalt), []byte(keyDerivationInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("new aead: %w", err)
	}

	return &EncryptedCredentialStore{
		inner: inner,
		aead:  aead,
	}, nil
}

// Get implements Store.Get by opening the sealed value of the inner store.
func (s *EncryptedCredentialStore) Get(ctx context.Context) (domain.Credential, bool, error) {
	sealed, ok, err := s.inner.Get(ctx)
	if err != nil {
		return "", false, fmt.Errorf("get sealed credential: %w", err)
	} else if !ok {
		return "", false, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(string(sealed))
	if err != nil {
		return "", false, errors.Join(ErrCorruptCredential, fmt.Errorf("decode: %w", err))
	}

	nonceSize := s.aead.NonceSize()
	if len(raw) < nonceSize+s.aead.Overhead() {
		return "", false, ErrCorruptCredential
	}

	plain, err := s.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", false, errors.Join(ErrCorruptCredential, fmt.Errorf("open: %w", err))
	}

	credential := domain.Credential(plain)

	return credential, !credential.IsBlank(), nil
}

// Set implements Store.Set by sealing the credential before storing it.
func (s *EncryptedCredentialStore) Set(ctx context.Context, credential domain.Credential) error {
	if credential.IsBlank() {
		return s.Clear(ctx)
	}

	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(credential)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}

	sealed := s.aead.Seal(nonce, nonce, []byte(credential), nil)

	if err := s.inner.Set(ctx, domain.Credential(base64.RawURLEncoding.EncodeToString(sealed))); err != nil {
		return fmt.Errorf("set sealed credential: %w", err)
	}

	return nil
}

// Clear implements Store.Clear.
func (s *EncryptedCredentialStore) Clear(ctx context.Context) error {
	if err := s.inner.Clear(ctx); err != nil {
		return fmt.Errorf("clear sealed credential: %w", err)
	}

	return nil
}

// Close implements Store.Close.
func (s *EncryptedCredentialStore) Close() error {
	return s.inner.Close()
}
