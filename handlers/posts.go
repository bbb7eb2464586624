package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/powerise/corporate-site/internal/content/repository"
	"github.com/powerise/corporate-site/internal/content/service"
	"github.com/powerise/corporate-site/pkg/logger"
)

// PostHandler serves the admin CRUD operations for announcements.
type PostHandler struct {
	svc *service.Service
}

func NewPostHandler(svc *service.Service) *PostHandler {
	return &PostHandler{svc: svc}
}

func (h *PostHandler) Register(admin *gin.RouterGroup) {
	admin.GET("/posts", h.List)
	admin.GET("/posts/:id", h.Get)
	admin.POST("/posts", h.Create)
	admin.PUT("/posts/:id", h.Update)
	admin.DELETE("/posts/:id", h.Delete)
}

type postRequest struct {
	Title         string     `json:"title" binding:"required,max=200"`
	Content       string     `json:"content" binding:"required"`
	Excerpt       string     `json:"excerpt" binding:"max=500"`
	Status        string     `json:"status" binding:"required,oneof=draft published"`
	Tags          []string   `json:"tags"`
	FeaturedImage string     `json:"featuredImage"`
	PublishedAt   *time.Time `json:"publishedAt"`
}

func (r postRequest) toInput() service.PostInput {
	return service.PostInput{
		Title:         r.Title,
		Content:       r.Content,
		Excerpt:       r.Excerpt,
		Status:        r.Status,
		Tags:          r.Tags,
		FeaturedImage: r.FeaturedImage,
		PublishedAt:   r.PublishedAt,
	}
}

// List returns all posts including drafts, newest created first.
func (h *PostHandler) List(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		status = repository.StatusAll
	}
	posts, err := h.svc.ListPosts(c.Request.Context(), repository.ListOptions{
		Status:  status,
		OrderBy: "createdAt",
	})
	if err != nil {
		logger.Errorf("list posts: %v", err)
		c.JSON(http.StatusOK, gin.H{"posts": []struct{}{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.svc.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err != repository.ErrNotFound {
			logger.Errorf("get post: %v", err)
		}
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailure(c, err)
		return
	}
	id, err := h.svc.CreatePost(c.Request.Context(), req.toInput())
	if err != nil {
		logger.Errorf("create post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create post"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id})
}

func (h *PostHandler) Update(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailure(c, err)
		return
	}
	if err := h.svc.UpdatePost(c.Request.Context(), c.Param("id"), req.toInput()); err != nil {
		logger.Errorf("update post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.svc.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		logger.Errorf("delete post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
