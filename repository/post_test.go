package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ThanhPhat1080/indie-blog/models"
)

func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect database")
	}

	db.AutoMigrate(&models.User{}, &models.Credential{}, &models.Post{})
	return db
}

func createTestUser(db *gorm.DB, email string) *models.User {
	user := &models.User{
		Name:  "Test Author",
		Email: email,
	}
	db.Create(user)
	return user
}

func createTestPost(db *gorm.DB, userID, slug string, publish bool) *models.Post {
	post := &models.Post{
		Title:     "Test Post",
		Slug:      slug,
		Preface:   "Test preface",
		Body:      "Test body",
		IsPublish: publish,
		UserID:    userID,
	}
	db.Create(post)
	return post
}

func TestPostCreateAndGetBySlug(t *testing.T) {
	db := setupTestDB()
	repo := NewPostRepository(db)

	user := createTestUser(db, "author@example.com")
	created := createTestPost(db, user.ID, "test-post", true)

	post, err := repo.GetBySlug("test-post")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, post.ID)
	assert.Equal(t, "Test Post", post.Title)
}

func TestPostCreate_DuplicateSlug(t *testing.T) {
	db := setupTestDB()
	repo := NewPostRepository(db)

	user := createTestUser(db, "author@example.com")
	createTestPost(db, user.ID, "taken-slug", true)

	err := repo.Create(&models.Post{
		Title:   "Another Post",
		Slug:    "taken-slug",
		Preface: "Preface",
		Body:    "Body",
		UserID:  user.ID,
	})

	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestListPublished_ExcludesDrafts(t *testing.T) {
	db := setupTestDB()
	repo := NewPostRepository(db)

	user := createTestUser(db, "author@example.com")
	createTestPost(db, user.ID, "published-post", true)
	createTestPost(db, user.ID, "draft-post", false)

	posts, err := repo.ListPublished("")
	assert.NoError(t, err)
	assert.Equal(t, 1, len(posts))
	assert.Equal(t, "published-post", posts[0].Slug)
}

func TestListPublished_ExcludeSlug(t *testing.T) {
	db := setupTestDB()
	repo := NewPostRepository(db)

	user := createTestUser(db, "author@example.com")
	createTestPost(db, user.ID, "current-post", true)
	createTestPost(db, user.ID, "other-post", true)

	posts, err := repo.ListPublished("current-post")
	assert.NoError(t, err)
	assert.Equal(t, 1, len(posts))
	assert.Equal(t, "other-post", posts[0].Slug)
}

func TestListPublished_OrderedByUpdatedAt(t *testing.T) {
	db := setupTestDB()
	repo := NewPostRepository(db)

	user := createTestUser(db, "author@example.com")

	older := createTestPost(db, user.ID, "older-post", true)
	newer := createTestPost(db, user.ID, "newer-post", true)
	db.Model(older).Update("updated_at", time.Now().Add(-time.Hour))
	db.Model(newer).Update("updated_at", time.Now())

	posts, err := repo.ListPublished("")
	assert.NoError(t, err)
	assert.Equal(t, 2, len(posts))
	assert.Equal(t, "newer-post", posts[0].Slug)
	assert.Equal(t, "older-post", posts[1].Slug)
}

func TestListByOwner(t *testing.T) {
	db := setupTestDB()
	repo := NewPostRepository(db)

	owner := createTestUser(db, "owner@example.com")
	other := createTestUser(db, "other@example.com")
	createTestPost(db, owner.ID, "owner-draft", false)
	createTestPost(db, owner.ID, "owner-published", true)
	createTestPost(db, other.ID, "other-post", true)

	posts, err := repo.ListByOwner(owner.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(posts))
	for _, post := range posts {
		assert.Equal(t, owner.ID, post.UserID)
	}
}

func TestGetOwnedBySlug_WrongOwner(t *testing.T) {
	db := setupTestDB()
	repo := NewPostRepository(db)

	owner := createTestUser(db, "owner@example.com")
	other := createTestUser(db, "other@example.com")
	createTestPost(db, owner.ID, "owner-post", true)

	_, err := repo.GetOwnedBySlug("owner-post", other.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetOwnedByID_WrongOwner(t *testing.T) {
	db := setupTestDB()
	repo := NewPostRepository(db)

	owner := createTestUser(db, "owner@example.com")
	other := createTestUser(db, "other@example.com")
	post := createTestPost(db, owner.ID, "owner-post", true)

	_, err := repo.GetOwnedByID(post.ID, other.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdate_PartialMap(t *testing.T) {
	db := setupTestDB()
	repo := NewPostRepository(db)

	user := createTestUser(db, "author@example.com")
	post := createTestPost(db, user.ID, "my-post", true)

	err := repo.Update(post, map[string]interface{}{
		"is_publish": false,
		"preface":    "New preface",
	})
	assert.NoError(t, err)

	updated, err := repo.GetBySlug("my-post")
	assert.NoError(t, err)
	assert.False(t, updated.IsPublish)
	assert.Equal(t, "New preface", updated.Preface)
	assert.Equal(t, "Test body", updated.Body)
}

func TestDeleteOwnedBySlug(t *testing.T) {
	db := setupTestDB()
	repo := NewPostRepository(db)

	user := createTestUser(db, "author@example.com")
	createTestPost(db, user.ID, "doomed-post", true)

	rows, err := repo.DeleteOwnedBySlug("doomed-post", user.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	_, err = repo.GetBySlug("doomed-post")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteOwnedBySlug_WrongOwner(t *testing.T) {
	db := setupTestDB()
	repo := NewPostRepository(db)

	owner := createTestUser(db, "owner@example.com")
	other := createTestUser(db, "other@example.com")
	createTestPost(db, owner.ID, "owner-post", true)

	rows, err := repo.DeleteOwnedBySlug("owner-post", other.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	post, err := repo.GetBySlug("owner-post")
	assert.NoError(t, err)
	assert.Equal(t, owner.ID, post.UserID)
}
