package conversations_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/carrybid/carrybid/internal/domain/actor"
	"github.com/carrybid/carrybid/internal/domain/conversations"
	"github.com/carrybid/carrybid/internal/domain/conversations/mock"
	"go.uber.org/mock/gomock"
)

var (
	asha  = actor.Ref{ID: "user-a", Name: "Asha"}
	bilal = actor.Ref{ID: "user-b", Name: "Bilal"}
	now   = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
)

func thread() conversations.Conversation {
	return conversations.Conversation{
		ID:           "conv-1",
		Participants: conversations.Pair(bilal.ID, asha.ID),
		Names:        map[string]string{asha.ID: asha.Name, bilal.ID: bilal.Name},
	}
}

func TestPair_OrderIndependent(t *testing.T) {
	if conversations.Pair("b", "a") != conversations.Pair("a", "b") {
		t.Fatal("Pair() depends on argument order")
	}
}

func Test_service_Find(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		list    []conversations.Conversation
		wantErr error
	}{
		{name: "Found from poster side", a: asha.ID, b: bilal.ID, list: []conversations.Conversation{thread()}},
		{name: "Found from bidder side", a: bilal.ID, b: asha.ID, list: []conversations.Conversation{thread()}},
		{name: "Other counterpart", a: asha.ID, b: "user-c", list: []conversations.Conversation{thread()}, wantErr: conversations.ErrNotFound},
		{name: "No conversations", a: asha.ID, b: bilal.ID, wantErr: conversations.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mock.NewMockRepository(gomock.NewController(t))
			repo.EXPECT().ListByParticipant(gomock.Any(), tt.a).Return(tt.list, nil)

			got, err := conversations.NewService(repo).Find(context.Background(), tt.a, tt.b)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Find() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && got.ID != "conv-1" {
				t.Errorf("Find() = %s, want conv-1", got.ID)
			}
		})
	}
}

func Test_service_Create(t *testing.T) {
	t.Run("Rejects existing pair", func(t *testing.T) {
		repo := mock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().ListByParticipant(gomock.Any(), bilal.ID).Return([]conversations.Conversation{thread()}, nil)

		_, err := conversations.NewService(repo).Create(context.Background(), bilal, asha)
		if !errors.Is(err, conversations.ErrConversationExists) {
			t.Fatalf("Create() error = %v", err)
		}
	})

	t.Run("Rejects same participant", func(t *testing.T) {
		repo := mock.NewMockRepository(gomock.NewController(t))
		_, err := conversations.NewService(repo).Create(context.Background(), asha, asha)
		if !errors.Is(err, conversations.ErrSameParticipant) {
			t.Fatalf("Create() error = %v", err)
		}
	})

	t.Run("Creates sorted pair with names", func(t *testing.T) {
		repo := mock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().ListByParticipant(gomock.Any(), bilal.ID).Return(nil, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		got, err := conversations.NewService(repo).Create(context.Background(), bilal, asha)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if got.Participants != [2]string{asha.ID, bilal.ID} {
			t.Errorf("Create() participants = %v", got.Participants)
		}
		if got.Names[bilal.ID] != "Bilal" || got.LastMessage != "" {
			t.Errorf("Create() got = %+v", got)
		}
	})
}

func Test_service_GetOrCreate(t *testing.T) {
	t.Run("Reuses existing", func(t *testing.T) {
		repo := mock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().ListByParticipant(gomock.Any(), asha.ID).Return([]conversations.Conversation{thread()}, nil)

		got, created, err := conversations.NewService(repo).GetOrCreate(context.Background(), asha, bilal, "hello")
		if err != nil || created || got.ID != "conv-1" {
			t.Fatalf("GetOrCreate() = %v, %v, %v", got, created, err)
		}
	})

	t.Run("Creates with seed", func(t *testing.T) {
		repo := mock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().ListByParticipant(gomock.Any(), asha.ID).Return(nil, nil).Times(2)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		got, created, err := conversations.NewService(repo).GetOrCreate(context.Background(), asha, bilal, "hello")
		if err != nil || !created {
			t.Fatalf("GetOrCreate() = %v, %v, %v", got, created, err)
		}
		if got.LastMessage != "hello" {
			t.Errorf("GetOrCreate() preview = %q", got.LastMessage)
		}
	})
}

func Test_service_AppendMessage(t *testing.T) {
	tests := []struct {
		name        string
		sender      string
		text, image string
		wantErr     error
		wantPreview string
	}{
		{name: "Text", sender: asha.ID, text: "hi", wantPreview: "hi"},
		{name: "Image only", sender: bilal.ID, image: "https://cdn/x.jpg", wantPreview: conversations.PhotoPreview},
		{name: "Text and image", sender: bilal.ID, text: "look", image: "https://cdn/x.jpg", wantPreview: "look"},
		{name: "Empty", sender: asha.ID, text: "   ", wantErr: conversations.ErrEmptyMessage},
		{name: "Outsider", sender: "user-c", text: "hi", wantErr: conversations.ErrNotParticipant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mock.NewMockRepository(gomock.NewController(t))
			if !errors.Is(tt.wantErr, conversations.ErrEmptyMessage) {
				conv := thread()
				repo.EXPECT().Get(gomock.Any(), "conv-1").Return(&conv, nil)
			}
			if tt.wantErr == nil {
				repo.EXPECT().AppendMessage(gomock.Any(), gomock.Any(), tt.wantPreview).Return(nil)
			}

			s := conversations.NewService(repo, conversations.WithClock(func() time.Time { return now }))
			got, err := s.AppendMessage(context.Background(), "conv-1", tt.sender, tt.text, tt.image)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AppendMessage() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && (!got.CreatedAt.Equal(now) || got.SenderID != tt.sender) {
				t.Errorf("AppendMessage() got = %+v", got)
			}
		})
	}
}

func Test_service_Messages_Ordered(t *testing.T) {
	repo := mock.NewMockRepository(gomock.NewController(t))
	conv := thread()
	repo.EXPECT().Get(gomock.Any(), "conv-1").Return(&conv, nil)
	repo.EXPECT().Messages(gomock.Any(), "conv-1").Return([]conversations.Message{
		{ID: "m2", CreatedAt: now.Add(time.Minute)},
		{ID: "m1", CreatedAt: now},
	}, nil)

	got, err := conversations.NewService(repo).Messages(context.Background(), actor.Actor{ID: asha.ID}, "conv-1")
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if got[0].ID != "m1" || got[1].ID != "m2" {
		t.Errorf("Messages() order = %s, %s", got[0].ID, got[1].ID)
	}
}
