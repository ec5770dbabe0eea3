package auth

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ThanhPhat1080/indie-blog/common"
	"github.com/ThanhPhat1080/indie-blog/models"
	"github.com/ThanhPhat1080/indie-blog/repository"
)

const sessionUserKey = "user_id"

type AuthModule struct {
	users repository.UserRepository
}

func NewAuthModule(users repository.UserRepository) *AuthModule {
	return &AuthModule{users: users}
}

func (a *AuthModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/login", a.loginPage)
	router.POST("/login", a.loginPost)
	router.GET("/register", a.registerPage)
	router.POST("/register", a.registerPost)
	router.GET("/logout", a.logout)
}

// RequireAuth gates protected routes. Without a session user the request
// is redirected to the login page, keeping the original destination so
// login can send the user back.
func RequireAuth(c *gin.Context) {
	session := sessions.Default(c)
	userID := session.Get(sessionUserKey)

	if userID == nil {
		c.Redirect(http.StatusFound, "/login?redirectTo="+url.QueryEscape(c.Request.URL.Path))
		c.Abort()
		return
	}

	c.Set(sessionUserKey, userID)
	c.Next()
}

// CurrentUserID resolves the session user for optional contexts such as
// public pages. Empty string means anonymous.
func CurrentUserID(c *gin.Context) string {
	session := sessions.Default(c)
	if id, ok := session.Get(sessionUserKey).(string); ok {
		return id
	}
	return ""
}

// SafeRedirect only follows local paths; anything else falls back. This
// keeps user-provided redirect targets from becoming open redirects.
func SafeRedirect(to, fallback string) string {
	if to == "" || !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") {
		return fallback
	}
	return to
}

func (a *AuthModule) loginPage(c *gin.Context) {
	if CurrentUserID(c) != "" {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	c.HTML(http.StatusOK, "auth_login.html", gin.H{
		"redirectTo": c.Query("redirectTo"),
	})
}

func (a *AuthModule) loginPost(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	redirectTo := SafeRedirect(c.PostForm("redirectTo"), "/dashboard")

	user, err := a.users.GetByEmail(email)
	if err != nil {
		c.HTML(http.StatusUnauthorized, "auth_login.html", gin.H{
			"error": "Invalid email or password",
			"email": email,
		})
		return
	}

	credential, err := a.users.GetCredentialByUserID(user.ID)
	if err != nil || !checkPasswordHash(password, credential.Hash) {
		c.HTML(http.StatusUnauthorized, "auth_login.html", gin.H{
			"error": "Invalid email or password",
			"email": email,
		})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, user.ID)
	session.Save()

	c.Redirect(http.StatusFound, redirectTo)
}

func (a *AuthModule) registerPage(c *gin.Context) {
	if CurrentUserID(c) != "" {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	c.HTML(http.StatusOK, "auth_register.html", gin.H{})
}

func (a *AuthModule) registerPost(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")
	bio := c.PostForm("bio")
	twitter := c.PostForm("twitter")

	// resubmitted on error; the password is intentionally left out
	formData := gin.H{
		"name":    name,
		"email":   email,
		"bio":     bio,
		"twitter": twitter,
	}

	if !common.IsValidUserName(name) {
		formData["error"] = "Name is invalid"
		c.HTML(http.StatusBadRequest, "auth_register.html", formData)
		return
	}

	if !common.IsValidEmail(email) {
		formData["error"] = "Email is invalid"
		c.HTML(http.StatusBadRequest, "auth_register.html", formData)
		return
	}

	if len(password) < 8 {
		formData["error"] = "Password is too short"
		c.HTML(http.StatusBadRequest, "auth_register.html", formData)
		return
	}

	if _, err := a.users.GetByEmail(email); err == nil {
		formData["error"] = "A user already exists with this email"
		c.HTML(http.StatusBadRequest, "auth_register.html", formData)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		formData["error"] = "Failed to create account"
		c.HTML(http.StatusInternalServerError, "auth_register.html", formData)
		return
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		formData["error"] = "Failed to create account"
		c.HTML(http.StatusInternalServerError, "auth_register.html", formData)
		return
	}

	user := models.User{
		Name:    common.TitleCase(name),
		Email:   email,
		Bio:     bio,
		Twitter: twitter,
	}

	if err := a.users.Create(&user, passwordHash); err != nil {
		formData["error"] = "Failed to create account"
		c.HTML(http.StatusInternalServerError, "auth_register.html", formData)
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, user.ID)
	session.Save()

	c.Redirect(http.StatusFound, SafeRedirect(c.PostForm("redirectTo"), "/"))
}

func (a *AuthModule) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	c.Redirect(http.StatusFound, "/login")
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
