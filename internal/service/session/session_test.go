package session

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStorage struct {
	getErr error
	setErr error
	value  string
	sets   int
}

func (f *failingStorage) Get(string) (string, error) { return f.value, f.getErr }

func (f *failingStorage) Set(_, value string) error {
	f.sets++
	if f.setErr == nil {
		f.value = value
	}
	return f.setErr
}

func TestGetOrCreateIsStable(t *testing.T) {
	p := New(nil)
	storage := NewMemoryStorage()

	first := p.GetOrCreate(storage)
	second := p.GetOrCreate(storage)

	assert.Equal(t, first, second)
	_, err := uuid.Parse(string(first))
	require.NoError(t, err)

	stored, err := storage.Get(StorageKey)
	require.NoError(t, err)
	assert.Equal(t, string(first), stored)
}

func TestGetOrCreateSeparateStorages(t *testing.T) {
	p := New(nil)
	assert.NotEqual(t, p.GetOrCreate(NewMemoryStorage()), p.GetOrCreate(NewMemoryStorage()))
}

func TestGetOrCreateReplacesMalformedID(t *testing.T) {
	p := New(nil)
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(StorageKey, "not-a-uuid"))

	id := p.GetOrCreate(storage)
	assert.NotEqual(t, "not-a-uuid", string(id))
	_, err := uuid.Parse(string(id))
	require.NoError(t, err)
}

func TestGetOrCreateDegradesWithoutStorage(t *testing.T) {
	var buf bytes.Buffer
	p := New(log.New(&buf, "", 0))

	id := p.GetOrCreate(nil)
	_, err := uuid.Parse(string(id))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "storage unavailable")
}

func TestGetOrCreateStorageErrors(t *testing.T) {
	var buf bytes.Buffer
	p := New(log.New(&buf, "", 0))

	readFail := &failingStorage{getErr: errors.New("blocked")}
	id := p.GetOrCreate(readFail)
	_, err := uuid.Parse(string(id))
	require.NoError(t, err)
	assert.Equal(t, 1, readFail.sets)

	// Each call stands for a request whose cookie could not be saved.
	writeFail := &failingStorage{setErr: errors.New("quota")}
	a := p.GetOrCreate(writeFail)
	b := p.GetOrCreate(writeFail)
	assert.NotEqual(t, a, b)
	assert.Contains(t, buf.String(), "read key=agrimart_session_id")
	assert.Contains(t, buf.String(), "write key=agrimart_session_id")
}
