package dashboard

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ThanhPhat1080/indie-blog/auth"
	"github.com/ThanhPhat1080/indie-blog/publish"
	"github.com/ThanhPhat1080/indie-blog/repository"
	"github.com/ThanhPhat1080/indie-blog/uploader"
)

type DashboardModule struct {
	posts     repository.PostRepository
	users     repository.UserRepository
	publisher *publish.Service
	images    uploader.ImageUploader
}

func NewDashboardModule(
	posts repository.PostRepository,
	users repository.UserRepository,
	publisher *publish.Service,
	images uploader.ImageUploader,
) *DashboardModule {
	return &DashboardModule{
		posts:     posts,
		users:     users,
		publisher: publisher,
		images:    images,
	}
}

func (d *DashboardModule) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/dashboard")
	group.Use(auth.RequireAuth)
	{
		group.GET("/", d.index)
		group.GET("/posts", d.listPosts)
		group.GET("/posts/new", d.newPost)
		group.POST("/posts", d.createPost)
		group.GET("/posts/:slug", d.showPost)
		group.GET("/posts/:slug/edit", d.editPost)
		group.PATCH("/posts/:id", d.updatePost)
		group.DELETE("/posts/:slug", d.deletePost)
		group.GET("/profile", d.profile)
		group.GET("/profile/edit", d.editProfile)
		group.PATCH("/profile", d.updateProfile)
	}
}

func (d *DashboardModule) index(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := d.users.GetByID(userID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "dashboard_error.html", gin.H{
			"error": "Can not found user. Please try to sign out and re-login!",
		})
		return
	}

	posts, err := d.posts.ListByOwner(userID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "dashboard_error.html", gin.H{
			"error": "Failed to load posts",
		})
		return
	}

	c.HTML(http.StatusOK, "dashboard_index.html", gin.H{
		"user":  user,
		"posts": posts,
	})
}

func (d *DashboardModule) listPosts(c *gin.Context) {
	userID := c.GetString("user_id")

	posts, err := d.posts.ListByOwner(userID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "dashboard_error.html", gin.H{
			"error": "Failed to load posts",
		})
		return
	}

	c.HTML(http.StatusOK, "dashboard_posts.html", gin.H{
		"posts": posts,
	})
}

func (d *DashboardModule) newPost(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard_editor.html", gin.H{
		"isEdit": false,
	})
}

func (d *DashboardModule) createPost(c *gin.Context) {
	userID := c.GetString("user_id")

	cover, err := formFile(c, "coverImage")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"coverImage": err.Error()}})
		return
	}

	input := publish.CreateInput{
		Title:     c.PostForm("title"),
		Preface:   c.PostForm("preface"),
		Body:      c.PostForm("body"),
		IsPublish: parseCheckbox(c.PostForm("isPublish")),
		OwnerID:   userID,
	}
	if cover != nil {
		defer cover.Close()
		input.CoverImage = cover
	}

	post, err := d.publisher.Create(c.Request.Context(), input)
	if err != nil {
		var fieldErrs publish.FieldErrors
		if errors.As(err, &fieldErrs) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Can not execute this action. Please try again!"})
		return
	}

	c.Redirect(http.StatusFound, "/dashboard/posts/"+post.Slug)
}

func (d *DashboardModule) showPost(c *gin.Context) {
	userID := c.GetString("user_id")
	slug := c.Param("slug")

	post, err := d.posts.GetOwnedBySlug(slug, userID)
	if err != nil {
		c.HTML(http.StatusNotFound, "dashboard_error.html", gin.H{
			"error": "Post not found",
		})
		return
	}

	c.HTML(http.StatusOK, "dashboard_post.html", gin.H{
		"post": post,
	})
}

func (d *DashboardModule) editPost(c *gin.Context) {
	userID := c.GetString("user_id")
	slug := c.Param("slug")

	post, err := d.posts.GetOwnedBySlug(slug, userID)
	if err != nil {
		c.HTML(http.StatusNotFound, "dashboard_error.html", gin.H{
			"error": "Post not found",
		})
		return
	}

	c.HTML(http.StatusOK, "dashboard_editor.html", gin.H{
		"isEdit": true,
		"post":   post,
	})
}

func (d *DashboardModule) updatePost(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	cover, err := formFile(c, "coverImage")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"coverImage": err.Error()}})
		return
	}

	input := publish.UpdateInput{
		PostID:    postID,
		Title:     c.PostForm("title"),
		Preface:   c.PostForm("preface"),
		Body:      c.PostForm("body"),
		IsPublish: parseCheckbox(c.PostForm("isPublish")),
		OwnerID:   userID,
	}
	if cover != nil {
		defer cover.Close()
		input.CoverImage = cover
	}

	post, err := d.publisher.Update(c.Request.Context(), input)
	if err != nil {
		var fieldErrs publish.FieldErrors
		if errors.As(err, &fieldErrs) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// same response whether the post is missing or owned by
			// someone else
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Can not execute this action. Please try again!"})
		return
	}

	c.Redirect(http.StatusFound, "/dashboard/posts/"+post.Slug)
}

func (d *DashboardModule) deletePost(c *gin.Context) {
	userID := c.GetString("user_id")
	slug := c.Param("slug")

	rows, err := d.posts.DeleteOwnedBySlug(slug, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	if rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

func (d *DashboardModule) profile(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := d.users.GetByID(userID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "dashboard_error.html", gin.H{
			"error": "Can not found user. Please try to sign out and re-login!",
		})
		return
	}

	c.HTML(http.StatusOK, "dashboard_profile.html", gin.H{
		"user": user,
	})
}

func (d *DashboardModule) editProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := d.users.GetByID(userID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "dashboard_error.html", gin.H{
			"error": "Can not found user. Please try to sign out and re-login!",
		})
		return
	}

	c.HTML(http.StatusOK, "dashboard_profile_edit.html", gin.H{
		"user": user,
	})
}

// updateProfile merge-patches the profile: name is required, bio and
// twitter overwrite only when non-empty, the avatar only when a new file
// was uploaded.
func (d *DashboardModule) updateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"name": "Name is required"}})
		return
	}

	updates := map[string]interface{}{
		"name": name,
	}
	if bio := c.PostForm("bio"); bio != "" {
		updates["bio"] = bio
	}
	if twitter := c.PostForm("twitter"); twitter != "" {
		updates["twitter"] = twitter
	}

	avatar, err := formFile(c, "avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"avatar": err.Error()}})
		return
	}
	if avatar != nil {
		defer avatar.Close()
		ref, err := d.images.Upload(c.Request.Context(), avatar)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"avatar": err.Error()}})
			return
		}
		updates["avatar"] = ref
	}

	if err := d.users.UpdateProfile(userID, updates); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Can not update user. Please try again!"})
		return
	}

	c.Redirect(http.StatusFound, "/dashboard/profile")
}

// formFile opens the named multipart file when one was submitted.
// A missing part is not an error; it simply means no file.
func formFile(c *gin.Context, field string) (multipart.File, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	return fileHeader.Open()
}

func parseCheckbox(value string) bool {
	switch strings.ToLower(value) {
	case "on", "true", "1":
		return true
	}
	return false
}
