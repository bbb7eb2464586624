package main

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/powerise/corporate-site/handlers"
	"github.com/powerise/corporate-site/internal/config"
	"github.com/powerise/corporate-site/internal/content/repository"
	"github.com/powerise/corporate-site/internal/content/service"
	"github.com/powerise/corporate-site/internal/database"
	"github.com/powerise/corporate-site/internal/identity"
	"github.com/powerise/corporate-site/internal/revalidate"
	"github.com/powerise/corporate-site/internal/session"
	"github.com/powerise/corporate-site/internal/storage"
	"github.com/powerise/corporate-site/pkg/logger"
	"github.com/powerise/corporate-site/pkg/metrics"
	"github.com/powerise/corporate-site/pkg/middleware"
	"github.com/powerise/corporate-site/web"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v identity=%v credentials=%s",
		cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.Identity.APIKey != "", cfg.Identity.CredentialMode())

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	ctx := context.Background()

	// Connect to Redis early so the page cache and rate limiter can use it
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Rendered-page cache: Redis when available, in-memory otherwise.
	var pageCache revalidate.Cache
	if redisClient != nil {
		pageCache = revalidate.NewRedisCache(redisClient, cfg.Cache.RevalidateInterval)
	} else {
		pageCache = revalidate.NewMemoryCache(cfg.Cache.RevalidateInterval)
	}

	// Rate limiting is applied to the public contact endpoint only.
	var contactLimiter []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			contactLimiter = append(contactLimiter,
				middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			contactLimiter = append(contactLimiter,
				middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Connect to MongoDB with retry/backoff to tolerate startup races.
	// When Mongo is unavailable the content repositories fall back to
	// in-memory storage so the public site still serves.
	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			mongoClient, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Warnf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
			mongoClient = nil
		}
	}

	var (
		postRepo    repository.PostRepository
		workRepo    repository.WorkRepository
		contactRepo repository.ContactRepository
	)
	if mongoClient != nil {
		defer func() { _ = mongoClient.Disconnect(ctx) }()
		db := mongoClient.Database(cfg.MongoDB.Database)
		postRepo = repository.NewMongoPostRepo(db.Collection("posts"))
		workRepo = repository.NewMongoWorkRepo(db.Collection("works"))
		contactRepo = repository.NewMongoContactRepo(db.Collection("contacts"))
		logger.Infof("Using MongoDB content storage: %s", cfg.MongoDB.Database)
	} else {
		postRepo = repository.NewMemoryPostRepo()
		workRepo = repository.NewMemoryWorkRepo()
		contactRepo = repository.NewMemoryContactRepo()
		logger.Warnf("MongoDB unavailable, using in-memory content storage (data is not persisted)")
	}

	svc := service.New(postRepo, workRepo, contactRepo, pageCache)

	// ID token verifier: real OIDC verification against the provider
	// issuer, or payload-only parsing for integration tests.
	var verifier identity.TokenVerifier
	if cfg.Identity.Issuer != "" {
		ver, err := identity.NewVerifier(ctx, cfg.Identity.Issuer, cfg.Identity.ProjectID)
		if err != nil {
			logger.Warnf("failed to initialize token verifier: %v", err)
		} else {
			verifier = ver
		}
	}
	if verifier == nil {
		if strings.EqualFold(strings.TrimSpace(os.Getenv("ALLOW_INSECURE_TOKEN")), "true") {
			logger.Warn("enabling insecure token verifier (integration mode)")
			verifier = identity.NewInsecureVerifier()
		}
	}

	var sessionStore *session.Store
	if cfg.Identity.APIKey != "" && verifier != nil {
		sessionStore = session.NewStore(identity.NewClient(cfg.Identity), verifier)
	}

	// Optional media storage for work image uploads
	var media *storage.MediaStorage
	if mc := storage.LoadMinIOConfig(); mc.Endpoint != "" {
		media, err = storage.NewMediaStorage(mc)
		if err != nil {
			logger.Warnf("media storage unavailable: %v", err)
			media = nil
		} else {
			logger.Infof("Connected to object storage: %s/%s", mc.Endpoint, mc.Bucket)
		}
	}

	// Public pages
	pages, err := handlers.NewPageHandler(svc, pageCache)
	if err != nil {
		logger.Fatalf("failed to parse templates: %v", err)
	}
	pages.Register(r)
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		logger.Fatalf("static assets: %v", err)
	}
	r.StaticFS("/static", http.FS(staticFS))

	// Admin API sits behind the cookie-presence guard.
	admin := r.Group("/admin/api", middleware.AdminGuard(cfg.Session.CookieName, "/admin/login"))

	handlers.NewContactHandler(svc).Register(r, admin, contactLimiter...)
	handlers.NewPostHandler(svc).Register(admin)
	handlers.NewWorkHandler(svc, media).Register(admin)
	if sessionStore != nil {
		handlers.NewAuthHandler(cfg, sessionStore).Register(r)
	} else {
		logger.Warnf("auth handlers not registered because the identity provider is not configured")
	}
	handlers.RegisterSwagger(r)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness — 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["mongodb"] = mongoClient != nil
		if cfg.MongoDB.URI != "" && mongoClient == nil {
			ready = false
		}
		deps["identity"] = sessionStore != nil
		if cfg.Identity.APIKey != "" && sessionStore == nil {
			ready = false
		}
		if cfg.Redis.Host != "" {
			deps["redis"] = redisClient != nil
			if redisClient == nil {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		status := http.StatusOK
		name := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			name = "not_ready"
		}
		c.JSON(status, gin.H{"status": name, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting corporate site service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
