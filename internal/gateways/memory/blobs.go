package memory

import (
	"context"
	"sync"

	"github.com/carrybid/carrybid/internal/domain/media"
)

// BlobStore keeps uploads in memory and serves them under BaseURL.
type BlobStore struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string]media.Object
}

var _ media.Store = (*BlobStore)(nil)

func NewBlobStore(baseURL string) *BlobStore {
	return &BlobStore{BaseURL: baseURL, objects: make(map[string]media.Object)}
}

func (b *BlobStore) Put(_ context.Context, obj media.Object) (string, error) {
	b.mu.Lock()
	b.objects[obj.Key()] = obj
	b.mu.Unlock()
	return b.BaseURL + "/" + obj.Key(), nil
}

// Object returns a stored upload by key.
func (b *BlobStore) Object(key string) (media.Object, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	obj, ok := b.objects[key]
	return obj, ok
}
