package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/powerise/corporate-site/internal/content"
	"github.com/powerise/corporate-site/internal/content/repository"
	"github.com/powerise/corporate-site/internal/content/service"
	"github.com/powerise/corporate-site/internal/revalidate"
	"github.com/powerise/corporate-site/pkg/logger"
	"github.com/powerise/corporate-site/pkg/metrics"
	"github.com/powerise/corporate-site/web"
)

// PageHandler renders the public pages server-side. Rendered HTML is
// cached per request path for the revalidation interval and dropped
// eagerly when an admin write touches the underlying content, so a
// page may be up to one interval stale after an out-of-band change.
type PageHandler struct {
	svc   *service.Service
	cache revalidate.Cache
	tmpl  *template.Template
}

func NewPageHandler(svc *service.Service, cache revalidate.Cache) (*PageHandler, error) {
	tmpl, err := template.ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &PageHandler{svc: svc, cache: cache, tmpl: tmpl}, nil
}

// Register mounts the public routes on the engine.
func (h *PageHandler) Register(r *gin.Engine) {
	r.GET("/", h.Home)
	r.GET("/about", h.static("about", "About Us"))
	r.GET("/services", h.static("services", "Services"))
	r.GET("/news", h.News)
	r.GET("/news/:id", h.NewsDetail)
	r.GET("/works", h.Works)
	r.GET("/works/:id", h.WorkDetail)
	r.GET("/contact", h.static("contact", "Contact"))
	r.GET("/admin/login", h.static("admin_login", "Admin Login"))
}

// render executes the named template, serves it, and caches the result
// under the request path. Detail pages for missing or unpublished
// records call notFound instead and are never cached.
func (h *PageHandler) render(c *gin.Context, name string, data gin.H) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		logger.Errorf("render %s: %v", name, err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	html := buf.String()
	h.cache.Set(c.Request.Context(), c.Request.URL.Path, html)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// serveCached returns true when the page was served from cache.
func (h *PageHandler) serveCached(c *gin.Context) bool {
	if html, ok := h.cache.Get(c.Request.Context(), c.Request.URL.Path); ok {
		metrics.PageCacheLookups.WithLabelValues("hit").Inc()
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
		return true
	}
	metrics.PageCacheLookups.WithLabelValues("miss").Inc()
	return false
}

func (h *PageHandler) notFound(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "notfound", gin.H{"Title": "Not Found"}); err != nil {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}
	c.Data(http.StatusNotFound, "text/html; charset=utf-8", buf.Bytes())
}

func (h *PageHandler) static(name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.serveCached(c) {
			return
		}
		h.render(c, name, gin.H{"Title": title})
	}
}

var publishedFirst = repository.ListOptions{
	Status:  content.StatusPublished,
	OrderBy: "publishedAt",
}

// Home shows the most recent published posts and works. Listing faults
// degrade to empty sections rather than an error page.
func (h *PageHandler) Home(c *gin.Context) {
	if h.serveCached(c) {
		return
	}
	ctx := c.Request.Context()

	postOpts := publishedFirst
	postOpts.Limit = 3
	posts, err := h.svc.ListPosts(ctx, postOpts)
	if err != nil {
		logger.Errorf("home: list posts: %v", err)
		posts = nil
	}
	workOpts := publishedFirst
	workOpts.Limit = 6
	works, err := h.svc.ListWorks(ctx, workOpts)
	if err != nil {
		logger.Errorf("home: list works: %v", err)
		works = nil
	}
	h.render(c, "home", gin.H{"Title": "Home", "Posts": posts, "Works": works})
}

func (h *PageHandler) News(c *gin.Context) {
	if h.serveCached(c) {
		return
	}
	posts, err := h.svc.ListPosts(c.Request.Context(), publishedFirst)
	if err != nil {
		logger.Errorf("news: list posts: %v", err)
		posts = nil
	}
	h.render(c, "news", gin.H{"Title": "News", "Posts": posts})
}

// NewsDetail serves one published post. Drafts are indistinguishable
// from missing records on the public site.
func (h *PageHandler) NewsDetail(c *gin.Context) {
	if h.serveCached(c) {
		return
	}
	post, err := h.svc.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.Errorf("news detail: %v", err)
		}
		h.notFound(c)
		return
	}
	if post.Status != content.StatusPublished {
		h.notFound(c)
		return
	}
	// Content is authored HTML (admin-only input); render it as markup.
	h.render(c, "news_detail", gin.H{"Title": post.Title, "Post": post, "Body": template.HTML(post.Content)})
}

func (h *PageHandler) Works(c *gin.Context) {
	if h.serveCached(c) {
		return
	}
	works, err := h.svc.ListWorks(c.Request.Context(), publishedFirst)
	if err != nil {
		logger.Errorf("works: list works: %v", err)
		works = nil
	}
	h.render(c, "works", gin.H{"Title": "Works", "Works": works})
}

func (h *PageHandler) WorkDetail(c *gin.Context) {
	if h.serveCached(c) {
		return
	}
	work, err := h.svc.GetWork(c.Request.Context(), c.Param("id"))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.Errorf("work detail: %v", err)
		}
		h.notFound(c)
		return
	}
	if work.Status != content.StatusPublished {
		h.notFound(c)
		return
	}
	h.render(c, "work_detail", gin.H{"Title": work.Title, "Work": work, "Body": template.HTML(work.Content)})
}
