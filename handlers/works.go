package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/powerise/corporate-site/internal/content/repository"
	"github.com/powerise/corporate-site/internal/content/service"
	"github.com/powerise/corporate-site/internal/storage"
	"github.com/powerise/corporate-site/pkg/logger"
)

// WorkHandler serves the admin CRUD operations for portfolio works and
// the image upload endpoint backing the work form.
type WorkHandler struct {
	svc   *service.Service
	media *storage.MediaStorage
}

func NewWorkHandler(svc *service.Service, media *storage.MediaStorage) *WorkHandler {
	return &WorkHandler{svc: svc, media: media}
}

func (h *WorkHandler) Register(admin *gin.RouterGroup) {
	admin.GET("/works", h.List)
	admin.GET("/works/:id", h.Get)
	admin.POST("/works", h.Create)
	admin.PUT("/works/:id", h.Update)
	admin.DELETE("/works/:id", h.Delete)
	admin.POST("/uploads", h.Upload)
}

type workRequest struct {
	Title         string     `json:"title" binding:"required,max=200"`
	Description   string     `json:"description" binding:"required,max=500"`
	Content       string     `json:"content" binding:"required"`
	Category      string     `json:"category" binding:"required,max=100"`
	Status        string     `json:"status" binding:"required,oneof=draft published"`
	Tags          []string   `json:"tags"`
	Images        []string   `json:"images"`
	FeaturedImage string     `json:"featuredImage"`
	ClientName    string     `json:"clientName" binding:"max=200"`
	ProjectURL    string     `json:"projectUrl" binding:"omitempty,url"`
	Technologies  []string   `json:"technologies"`
	PublishedAt   *time.Time `json:"publishedAt"`
}

func (r workRequest) toInput() service.WorkInput {
	return service.WorkInput{
		Title:         r.Title,
		Description:   r.Description,
		Content:       r.Content,
		Category:      r.Category,
		Status:        r.Status,
		Tags:          r.Tags,
		Images:        r.Images,
		FeaturedImage: r.FeaturedImage,
		ClientName:    r.ClientName,
		ProjectURL:    r.ProjectURL,
		Technologies:  r.Technologies,
		PublishedAt:   r.PublishedAt,
	}
}

// List returns all works including drafts, most recently updated first.
func (h *WorkHandler) List(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		status = repository.StatusAll
	}
	works, err := h.svc.ListWorks(c.Request.Context(), repository.ListOptions{
		Status:  status,
		OrderBy: "updatedAt",
	})
	if err != nil {
		logger.Errorf("list works: %v", err)
		c.JSON(http.StatusOK, gin.H{"works": []struct{}{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"works": works})
}

func (h *WorkHandler) Get(c *gin.Context) {
	work, err := h.svc.GetWork(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err != repository.ErrNotFound {
			logger.Errorf("get work: %v", err)
		}
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "not found"})
		return
	}
	c.JSON(http.StatusOK, work)
}

func (h *WorkHandler) Create(c *gin.Context) {
	var req workRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailure(c, err)
		return
	}
	id, err := h.svc.CreateWork(c.Request.Context(), req.toInput())
	if err != nil {
		logger.Errorf("create work: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create work"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id})
}

func (h *WorkHandler) Update(c *gin.Context) {
	var req workRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailure(c, err)
		return
	}
	if err := h.svc.UpdateWork(c.Request.Context(), c.Param("id"), req.toInput()); err != nil {
		logger.Errorf("update work: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update work"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *WorkHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteWork(c.Request.Context(), c.Param("id")); err != nil {
		logger.Errorf("delete work: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete work"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Upload stores a work image and returns a URL the form can embed.
func (h *WorkHandler) Upload(c *gin.Context) {
	if h.media == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "media storage not configured"})
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "file field is required"})
		return
	}
	src, err := file.Open()
	if err != nil {
		logger.Errorf("open upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to read upload"})
		return
	}
	defer src.Close()

	key := fmt.Sprintf("works/%s%s", uuid.NewString(), filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")
	if err := h.media.Upload(c.Request.Context(), key, src, file.Size, contentType); err != nil {
		logger.Errorf("upload %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to store upload"})
		return
	}
	url, err := h.media.PresignedURL(c.Request.Context(), key, 7*24*time.Hour)
	if err != nil {
		logger.Errorf("presign %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to store upload"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "key": key, "url": url})
}
