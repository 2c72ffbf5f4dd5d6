// Package session issues the anonymous identifier that scopes a shopper's
// cart. The identifier lives in client-side storage; this package only knows
// that storage through the Storage contract.
package session

import (
	"io"
	"log"
	"sync"

	"agrimart/internal/domain"
	"github.com/google/uuid"
)

// StorageKey is the key the session id is persisted under.
const StorageKey = "agrimart_session_id"

// Storage is durable client-side key/value storage.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

type Provider struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Provider {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Provider{logger: logger}
}

// GetOrCreate returns the session id stored in storage, creating and
// persisting a new random one when none is stored. Storage failures are
// logged and the returned id is simply not persisted. Over HTTP the storage
// is the request's cookie, so a client whose cookie cannot be written gets a
// fresh id, and an empty cart, on every request.
func (p *Provider) GetOrCreate(storage Storage) domain.SessionID {
	if storage == nil {
		p.logger.Printf("session: storage unavailable, using ephemeral id")
		return newID()
	}

	stored, err := storage.Get(StorageKey)
	if err != nil {
		p.logger.Printf("session: read key=%s err=%v", StorageKey, err)
	} else if stored != "" {
		if _, perr := uuid.Parse(stored); perr == nil {
			return domain.SessionID(stored)
		}
		p.logger.Printf("session: replacing malformed id key=%s", StorageKey)
	}

	id := newID()
	if err := storage.Set(StorageKey, string(id)); err != nil {
		p.logger.Printf("session: write key=%s err=%v", StorageKey, err)
	}
	return id
}

func newID() domain.SessionID {
	return domain.SessionID(uuid.NewString())
}

// MemoryStorage is a process-local Storage.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}
