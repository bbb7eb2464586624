package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/powerise/corporate-site/internal/content/repository"
	"github.com/powerise/corporate-site/internal/content/service"
	"github.com/powerise/corporate-site/pkg/logger"
	"github.com/powerise/corporate-site/pkg/metrics"
)

// ContactHandler serves the public contact form endpoint and the admin
// inbox operations.
type ContactHandler struct {
	svc *service.Service
}

func NewContactHandler(svc *service.Service) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// Register mounts the public endpoint on the engine and the admin
// operations on the guarded group.
func (h *ContactHandler) Register(r *gin.Engine, admin *gin.RouterGroup, public ...gin.HandlerFunc) {
	chain := append(public, h.Submit)
	r.POST("/api/contacts", chain...)
	// only POST is served here
	r.GET("/api/contacts", func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	admin.GET("/contacts", h.List)
	admin.GET("/contacts/:id", h.Get)
	admin.PATCH("/contacts/:id/status", h.UpdateStatus)
	admin.DELETE("/contacts/:id", h.Delete)
}

type contactRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Subject string `json:"subject" binding:"required,max=200"`
	Message string `json:"message" binding:"required,max=2000"`
}

// Submit accepts a public contact form submission. Validation failures
// return per-field details and persist nothing.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		bindingFailure(c, err)
		return
	}

	id, err := h.svc.SubmitContact(c.Request.Context(), service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		logger.Errorf("contact submission: %v", err)
		metrics.ContactSubmissions.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "A server error occurred. Please try again later.",
		})
		return
	}

	logger.Infof("contact form submitted: id=%s subject=%q", id, req.Subject)
	metrics.ContactSubmissions.WithLabelValues("accepted").Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Your inquiry has been received",
		"id":      id,
	})
}

// List returns all submissions for the admin inbox, newest first.
func (h *ContactHandler) List(c *gin.Context) {
	contacts, err := h.svc.ListContacts(c.Request.Context(), repository.ListOptions{
		Status: c.Query("status"),
	})
	if err != nil {
		logger.Errorf("list contacts: %v", err)
		// reads degrade to an empty list; the caller cannot distinguish
		// "none" from "fetch failed"
		c.JSON(http.StatusOK, gin.H{"contacts": []struct{}{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

func (h *ContactHandler) Get(c *gin.Context) {
	contact, err := h.svc.GetContact(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == repository.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "not found"})
			return
		}
		logger.Errorf("get contact: %v", err)
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "not found"})
		return
	}
	c.JSON(http.StatusOK, contact)
}

type contactStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new read replied"`
}

func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	var req contactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailure(c, err)
		return
	}
	if err := h.svc.UpdateContactStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		logger.Errorf("update contact status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update contact status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteContact(c.Request.Context(), c.Param("id")); err != nil {
		logger.Errorf("delete contact: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete contact"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
