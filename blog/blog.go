package blog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ThanhPhat1080/indie-blog/repository"
)

type BlogModule struct {
	posts repository.PostRepository
	users repository.UserRepository
}

func NewBlogModule(posts repository.PostRepository, users repository.UserRepository) *BlogModule {
	return &BlogModule{posts: posts, users: users}
}

func (b *BlogModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/", b.index)
	router.GET("/posts/:postSlug", b.post)
}

func (b *BlogModule) index(c *gin.Context) {
	posts, err := b.posts.ListPublished("")
	if err != nil {
		c.HTML(http.StatusInternalServerError, "blog_error.html", gin.H{
			"error": "Failed to load posts",
		})
		return
	}

	c.HTML(http.StatusOK, "blog_index.html", gin.H{
		"posts": posts,
	})
}

func (b *BlogModule) post(c *gin.Context) {
	slug := c.Param("postSlug")

	post, err := b.posts.GetBySlug(slug)
	if err != nil || !post.IsPublish {
		// drafts are visible to their owner only, through the dashboard
		c.HTML(http.StatusNotFound, "blog_error.html", gin.H{
			"error": "Post not found",
		})
		return
	}

	author, _ := b.users.GetByID(post.UserID)

	related, err := b.posts.ListPublished(slug)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "blog_error.html", gin.H{
			"error": "Failed to load posts",
		})
		return
	}

	c.HTML(http.StatusOK, "blog_post.html", gin.H{
		"post":    post,
		"author":  author,
		"related": related,
	})
}
