package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mfimia/reddit-clone/internal/domain"
)

var ErrPostNotFound = errors.New("post not found")

type PostRepository interface {
	Create(post *domain.Post) error
	FindByID(id uint) (*domain.Post, error)
	// List returns up to limit posts ordered by creation time descending.
	// When before is non-nil only posts strictly older than it are returned.
	List(limit int, before *time.Time) ([]*domain.Post, error)
	UpdateTitle(id uint, title string) error
	Delete(id uint) error
}

type GormPostRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) PostRepository {
	return &GormPostRepository{db: db}
}

func (r *GormPostRepository) Create(post *domain.Post) error {
	return r.db.Create(post).Error
}

func (r *GormPostRepository) FindByID(id uint) (*domain.Post, error) {
	var post domain.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *GormPostRepository) List(limit int, before *time.Time) ([]*domain.Post, error) {
	q := r.db.Order("created_at DESC").Limit(limit)
	if before != nil {
		q = q.Where("created_at < ?", *before)
	}
	posts := make([]*domain.Post, 0, limit)
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *GormPostRepository) UpdateTitle(id uint, title string) error {
	res := r.db.Model(&domain.Post{}).Where("id = ?", id).Update("title", title)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *GormPostRepository) Delete(id uint) error {
	res := r.db.Delete(&domain.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}
