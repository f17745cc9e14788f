package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mfimia/reddit-clone/internal/domain"
	"github.com/mfimia/reddit-clone/internal/repository"
)

const MaxPostsPageSize = 50

type PostInput struct {
	Title string
	Text  string
}

type PostService struct {
	posts  repository.PostRepository
	logger *slog.Logger
}

func NewPostService(posts repository.PostRepository, logger *slog.Logger) *PostService {
	return &PostService{posts: posts, logger: logger}
}

// List returns at most min(max(limit, 1), 50) posts, newest first. A cursor,
// when present, restricts the page to posts strictly older than it.
func (s *PostService) List(ctx context.Context, limit int, cursor *string) ([]*domain.Post, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPostsPageSize {
		limit = MaxPostsPageSize
	}

	var before *time.Time
	if cursor != nil && *cursor != "" {
		t, err := repository.DecodeCursor(*cursor)
		if err != nil {
			return nil, fmt.Errorf("invalid cursor: %w", err)
		}
		before = &t
	}
	return s.posts.List(limit, before)
}

// Get returns nil without error for a missing id.
func (s *PostService) Get(ctx context.Context, id uint) (*domain.Post, error) {
	post, err := s.posts.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

func (s *PostService) Create(ctx context.Context, creatorID uint, input PostInput) (*domain.Post, error) {
	post := &domain.Post{
		Title:     input.Title,
		Text:      input.Text,
		CreatorID: creatorID,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// Update changes the title when one was supplied. A nil title means "leave
// unchanged"; an explicit empty string does overwrite.
func (s *PostService) Update(ctx context.Context, id uint, title *string) (*domain.Post, error) {
	post, err := s.posts.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if title == nil {
		return post, nil
	}
	if err := s.posts.UpdateTitle(id, *title); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, nil
		}
		return nil, err
	}
	post.Title = *title
	return post, nil
}

// Delete reports whether a post was removed. Store failures are logged and
// reported as false.
func (s *PostService) Delete(ctx context.Context, id uint) bool {
	if err := s.posts.Delete(id); err != nil {
		if !errors.Is(err, repository.ErrPostNotFound) {
			s.logger.ErrorContext(ctx, "post delete failed", "post_id", id, "error", err)
		}
		return false
	}
	return true
}
