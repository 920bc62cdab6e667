// Package media validates user uploads and hands them to a blob store.
package media

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/carrybid/carrybid/internal/domain/fault"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type Category string

const (
	CategoryItems    Category = "items"
	CategoryChat     Category = "chat"
	CategoryIdentity Category = "identity"
	CategoryAvatars  Category = "avatars"
)

const (
	MaxSize           = 8 << 20
	uploadConcurrency = 3
)

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

type Object struct {
	Category    Category
	Name        string
	ContentType string
	Data        []byte
}

// Store persists an object and returns its public URL.
type Store interface {
	Put(ctx context.Context, obj Object) (string, error)
}

// Validate checks field and names the object with a fresh key under its
// category, keeping the original extension.
func Validate(field string, obj *Object) error {
	if len(obj.Data) == 0 {
		return fault.Validation(field, "image is required")
	}
	if len(obj.Data) > MaxSize {
		return fault.Validation(field, fmt.Sprintf("image exceeds %d MB", MaxSize>>20))
	}

	ext := strings.ToLower(path.Ext(obj.Name))
	ct, ok := contentTypes[ext]
	if !ok {
		return fault.Validation(field, "unsupported image type "+ext)
	}
	if obj.ContentType == "" {
		obj.ContentType = ct
	}
	obj.Name = uuid.NewString() + ext
	return nil
}

// Key is the object path inside the bucket.
func (o Object) Key() string {
	return string(o.Category) + "/" + o.Name
}

// PutAll uploads objs with bounded concurrency and returns their URLs in order.
func PutAll(ctx context.Context, store Store, objs ...Object) ([]string, error) {
	urls := make([]string, len(objs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)
	for i, obj := range objs {
		i, obj := i, obj
		g.Go(func() error {
			url, err := store.Put(ctx, obj)
			if err != nil {
				return fmt.Errorf("failed to upload %s: %w", obj.Key(), err)
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}
