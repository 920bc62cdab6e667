package media

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/carrybid/carrybid/internal/domain/fault"
)

type fakeStore struct {
	mu   sync.Mutex
	keys []string
	fail string
}

func (f *fakeStore) Put(_ context.Context, obj Object) (string, error) {
	if obj.Category == Category(f.fail) {
		return "", errors.New("bucket unavailable")
	}
	f.mu.Lock()
	f.keys = append(f.keys, obj.Key())
	f.mu.Unlock()
	return "https://cdn.example/" + obj.Key(), nil
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		obj     Object
		wantErr bool
	}{
		{name: "Jpeg", obj: Object{Name: "front.JPG", Data: []byte{1}}},
		{name: "Empty", obj: Object{Name: "front.jpg"}, wantErr: true},
		{name: "Too large", obj: Object{Name: "front.jpg", Data: make([]byte, MaxSize+1)}, wantErr: true},
		{name: "Pdf", obj: Object{Name: "scan.pdf", Data: []byte{1}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := tt.obj
			err := Validate("front_image", &obj)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, fault.ErrValidation) || fault.Fields(err)["front_image"] == "" {
					t.Errorf("Validate() error = %v, want field error", err)
				}
				return
			}
			if obj.ContentType != "image/jpeg" || !strings.HasSuffix(obj.Name, ".jpg") || obj.Name == "front.jpg" {
				t.Errorf("Validate() obj = %+v", obj)
			}
		})
	}
}

func TestPutAll(t *testing.T) {
	store := &fakeStore{}
	urls, err := PutAll(context.Background(), store,
		Object{Category: CategoryIdentity, Name: "a.jpg"},
		Object{Category: CategoryIdentity, Name: "b.jpg"},
	)
	if err != nil {
		t.Fatalf("PutAll() error = %v", err)
	}
	if urls[0] != "https://cdn.example/identity/a.jpg" || urls[1] != "https://cdn.example/identity/b.jpg" {
		t.Errorf("PutAll() = %v", urls)
	}

	store.fail = string(CategoryChat)
	if _, err := PutAll(context.Background(), store, Object{Category: CategoryChat, Name: "c.jpg"}); err == nil {
		t.Error("PutAll() expected error")
	}
}
