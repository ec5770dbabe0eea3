package repository

import (
	"gorm.io/gorm"

	"github.com/ThanhPhat1080/indie-blog/models"
)

// PostRepository is the owner-scoped persistence contract for posts.
// Every mutating operation carries the acting owner's id, so a non-owner
// can neither read another author's draft nor affect their rows.
type PostRepository interface {
	Create(post *models.Post) error
	Update(post *models.Post, updates map[string]interface{}) error
	GetBySlug(slug string) (*models.Post, error)
	GetOwnedBySlug(slug, ownerID string) (*models.Post, error)
	GetOwnedByID(id, ownerID string) (*models.Post, error)
	ListPublished(excludeSlug string) ([]models.Post, error)
	ListByOwner(ownerID string) ([]models.Post, error)
	DeleteOwnedBySlug(slug, ownerID string) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// Update applies a partial update map. Callers decide which fields are
// present; booleans must always be included since an absent key means
// "leave unchanged".
func (r *postRepository) Update(post *models.Post, updates map[string]interface{}) error {
	return r.db.Model(post).Updates(updates).Error
}

func (r *postRepository) GetBySlug(slug string) (*models.Post, error) {
	var post models.Post
	if err := r.db.Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetOwnedBySlug(slug, ownerID string) (*models.Post, error) {
	var post models.Post
	if err := r.db.Where("slug = ? AND user_id = ?", slug, ownerID).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetOwnedByID(id, ownerID string) (*models.Post, error) {
	var post models.Post
	if err := r.db.Where("id = ? AND user_id = ?", id, ownerID).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPublished returns published posts, most recently updated first.
// A non-empty excludeSlug drops that post from the result, which is how
// the detail page builds its "related posts" section.
func (r *postRepository) ListPublished(excludeSlug string) ([]models.Post, error) {
	var posts []models.Post
	query := r.db.Where("is_publish = ?", true)
	if excludeSlug != "" {
		query = query.Where("slug <> ?", excludeSlug)
	}
	err := query.Order("updated_at DESC").Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByOwner(ownerID string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("user_id = ?", ownerID).Order("updated_at DESC").Find(&posts).Error
	return posts, err
}

// DeleteOwnedBySlug removes the post only when the owner matches and
// reports how many rows were affected. Zero rows is not an error; it is
// the caller-visible signal for "not found or not yours".
func (r *postRepository) DeleteOwnedBySlug(slug, ownerID string) (int64, error) {
	result := r.db.Where("slug = ? AND user_id = ?", slug, ownerID).Delete(&models.Post{})
	return result.RowsAffected, result.Error
}
