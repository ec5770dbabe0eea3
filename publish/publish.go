package publish

import (
	"context"
	"errors"
	"io"
	"strings"

	"gorm.io/gorm"

	"github.com/ThanhPhat1080/indie-blog/common"
	"github.com/ThanhPhat1080/indie-blog/models"
	"github.com/ThanhPhat1080/indie-blog/repository"
	"github.com/ThanhPhat1080/indie-blog/uploader"
)

const slugTakenMessage = "This title or slug already taken"

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// Service orchestrates the publishing workflow: field validation, slug
// derivation and uniqueness, cover image upload and persistence.
type Service struct {
	posts  repository.PostRepository
	images uploader.ImageUploader
}

func NewService(posts repository.PostRepository, images uploader.ImageUploader) *Service {
	return &Service{posts: posts, images: images}
}

type CreateInput struct {
	Title      string
	Preface    string
	Body       string
	CoverImage io.Reader // nil when no file was submitted
	IsPublish  bool
	OwnerID    string
}

// Create validates the submission, uploads the cover image when one was
// supplied and inserts the post. Nothing is persisted unless every prior
// step succeeded, so an upload failure leaves no partial post behind.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Post, error) {
	if fieldErrs := validateContent(in.Title, in.Preface, in.Body); fieldErrs != nil {
		return nil, fieldErrs
	}

	slug := common.Slugify(in.Title)

	// Friendly pre-check; the unique index on slug stays authoritative.
	if _, err := s.posts.GetBySlug(slug); err == nil {
		return nil, FieldErrors{"slug": slugTakenMessage}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	coverImage := ""
	if in.CoverImage != nil {
		ref, err := s.images.Upload(ctx, in.CoverImage)
		if err != nil {
			return nil, FieldErrors{"coverImage": err.Error()}
		}
		coverImage = ref
	}

	post := &models.Post{
		Title:      strings.TrimSpace(in.Title),
		Slug:       slug,
		Preface:    strings.TrimSpace(in.Preface),
		Body:       in.Body,
		CoverImage: coverImage,
		IsPublish:  in.IsPublish,
		UserID:     in.OwnerID,
	}

	if err := s.posts.Create(post); err != nil {
		// Two authors can pass the pre-check with the same title at the
		// same time; the unique index decides the winner.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, FieldErrors{"slug": slugTakenMessage}
		}
		return nil, err
	}

	return post, nil
}

type UpdateInput struct {
	PostID     string
	Title      string
	Preface    string
	Body       string
	CoverImage io.Reader // nil when no file was submitted
	IsPublish  bool
	OwnerID    string
}

// Update edits an owned post with merge-patch semantics: empty content
// fields leave the stored values unchanged, while IsPublish is always
// written explicitly. A non-empty title re-derives the slug; if another
// post already holds that slug the whole update fails as a conflict.
// A post that does not exist or is not owned by OwnerID surfaces as
// gorm.ErrRecordNotFound.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*models.Post, error) {
	post, err := s.posts.GetOwnedByID(in.PostID, in.OwnerID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"is_publish": in.IsPublish,
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		slug := common.Slugify(title)
		if existing, err := s.posts.GetBySlug(slug); err == nil {
			if existing.ID != post.ID {
				return nil, FieldErrors{"slug": slugTakenMessage}
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		updates["title"] = title
		updates["slug"] = slug
	}

	if preface := strings.TrimSpace(in.Preface); preface != "" {
		updates["preface"] = preface
	}

	if strings.TrimSpace(in.Body) != "" {
		updates["body"] = in.Body
	}

	if in.CoverImage != nil {
		ref, err := s.images.Upload(ctx, in.CoverImage)
		if err != nil {
			return nil, FieldErrors{"coverImage": err.Error()}
		}
		updates["cover_image"] = ref
	}

	if err := s.posts.Update(post, updates); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, FieldErrors{"slug": slugTakenMessage}
		}
		return nil, err
	}

	return s.posts.GetOwnedByID(in.PostID, in.OwnerID)
}

func validateContent(title, preface, body string) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(title) == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(preface) == "" {
		errs["preface"] = "Preface is required"
	}
	if strings.TrimSpace(body) == "" {
		errs["body"] = "Body is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
