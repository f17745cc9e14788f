package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mfimia/reddit-clone/internal/domain"
	"github.com/mfimia/reddit-clone/internal/repository"
)

type stubPostRepository struct {
	createFn      func(post *domain.Post) error
	findByIDFn    func(id uint) (*domain.Post, error)
	listFn        func(limit int, before *time.Time) ([]*domain.Post, error)
	updateTitleFn func(id uint, title string) error
	deleteFn      func(id uint) error
}

func (s *stubPostRepository) Create(post *domain.Post) error {
	if s.createFn == nil {
		return errors.New("not implemented")
	}
	return s.createFn(post)
}

func (s *stubPostRepository) FindByID(id uint) (*domain.Post, error) {
	if s.findByIDFn == nil {
		return nil, errors.New("not implemented")
	}
	return s.findByIDFn(id)
}

func (s *stubPostRepository) List(limit int, before *time.Time) ([]*domain.Post, error) {
	if s.listFn == nil {
		return nil, errors.New("not implemented")
	}
	return s.listFn(limit, before)
}

func (s *stubPostRepository) UpdateTitle(id uint, title string) error {
	if s.updateTitleFn == nil {
		return errors.New("not implemented")
	}
	return s.updateTitleFn(id, title)
}

func (s *stubPostRepository) Delete(id uint) error {
	if s.deleteFn == nil {
		return errors.New("not implemented")
	}
	return s.deleteFn(id)
}

func newPostServiceForTest(repo repository.PostRepository) *PostService {
	return NewPostService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPostServiceListCapsLimit(t *testing.T) {
	cases := []struct {
		name      string
		requested int
		expected  int
	}{
		{"huge limit", 1000, 50},
		{"zero limit", 0, 1},
		{"negative limit", -3, 1},
		{"small limit", 5, 5},
		{"exactly max", 50, 50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got int
			repo := &stubPostRepository{
				listFn: func(limit int, _ *time.Time) ([]*domain.Post, error) {
					got = limit
					return nil, nil
				},
			}
			if _, err := newPostServiceForTest(repo).List(context.Background(), tc.requested, nil); err != nil {
				t.Fatalf("list: %v", err)
			}
			if got != tc.expected {
				t.Fatalf("expected limit %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestPostServiceListDecodesCursor(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cursor := repository.EncodeCursor(ts)

	var got *time.Time
	repo := &stubPostRepository{
		listFn: func(_ int, before *time.Time) ([]*domain.Post, error) {
			got = before
			return nil, nil
		},
	}
	svc := newPostServiceForTest(repo)

	if _, err := svc.List(context.Background(), 10, &cursor); err != nil {
		t.Fatalf("list: %v", err)
	}
	if got == nil || !got.Equal(ts) {
		t.Fatalf("expected cursor time %v, got %v", ts, got)
	}

	bad := "garbage"
	if _, err := svc.List(context.Background(), 10, &bad); err == nil {
		t.Fatal("expected error for invalid cursor")
	}
}

func TestPostServiceGetMissingIsNil(t *testing.T) {
	repo := &stubPostRepository{
		findByIDFn: func(uint) (*domain.Post, error) {
			return nil, repository.ErrPostNotFound
		},
	}
	post, err := newPostServiceForTest(repo).Get(context.Background(), 9)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if post != nil {
		t.Fatalf("expected nil post, got %+v", post)
	}
}

func TestPostServiceCreateSetsCreator(t *testing.T) {
	var created *domain.Post
	repo := &stubPostRepository{
		createFn: func(post *domain.Post) error {
			post.ID = 11
			created = post
			return nil
		},
	}
	post, err := newPostServiceForTest(repo).Create(context.Background(), 4, PostInput{Title: "hi", Text: "body"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.ID != 11 {
		t.Fatalf("unexpected post: %+v", post)
	}
	if created.CreatorID != 4 {
		t.Fatalf("expected creator 4, got %d", created.CreatorID)
	}
}

func TestPostServiceUpdateTitleAbsentVsEmpty(t *testing.T) {
	t.Run("absent title leaves post unchanged", func(t *testing.T) {
		updateCalled := false
		repo := &stubPostRepository{
			findByIDFn: func(id uint) (*domain.Post, error) {
				return &domain.Post{ID: id, Title: "original"}, nil
			},
			updateTitleFn: func(uint, string) error {
				updateCalled = true
				return nil
			},
		}
		post, err := newPostServiceForTest(repo).Update(context.Background(), 1, nil)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updateCalled {
			t.Fatal("expected no title write for absent title")
		}
		if post.Title != "original" {
			t.Fatalf("expected unchanged title, got %q", post.Title)
		}
	})

	t.Run("explicit empty title overwrites", func(t *testing.T) {
		var written *string
		repo := &stubPostRepository{
			findByIDFn: func(id uint) (*domain.Post, error) {
				return &domain.Post{ID: id, Title: "original"}, nil
			},
			updateTitleFn: func(_ uint, title string) error {
				written = &title
				return nil
			},
		}
		empty := ""
		post, err := newPostServiceForTest(repo).Update(context.Background(), 1, &empty)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if written == nil || *written != "" {
			t.Fatalf("expected empty title write, got %v", written)
		}
		if post.Title != "" {
			t.Fatalf("expected empty title on result, got %q", post.Title)
		}
	})

	t.Run("missing post is nil", func(t *testing.T) {
		repo := &stubPostRepository{
			findByIDFn: func(uint) (*domain.Post, error) {
				return nil, repository.ErrPostNotFound
			},
		}
		title := "x"
		post, err := newPostServiceForTest(repo).Update(context.Background(), 9, &title)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if post != nil {
			t.Fatalf("expected nil post, got %+v", post)
		}
	})
}

func TestPostServiceDelete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &stubPostRepository{
			deleteFn: func(uint) error { return nil },
		}
		if !newPostServiceForTest(repo).Delete(context.Background(), 1) {
			t.Fatal("expected delete to report true")
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo := &stubPostRepository{
			deleteFn: func(uint) error { return repository.ErrPostNotFound },
		}
		if newPostServiceForTest(repo).Delete(context.Background(), 1) {
			t.Fatal("expected delete to report false for missing post")
		}
	})

	t.Run("store failure is swallowed", func(t *testing.T) {
		repo := &stubPostRepository{
			deleteFn: func(uint) error { return errors.New("db down") },
		}
		if newPostServiceForTest(repo).Delete(context.Background(), 1) {
			t.Fatal("expected delete to report false on store failure")
		}
	})
}
