package app

import (
	"github.com/bscheucher/keeper-server/internal/auth"
	"github.com/bscheucher/keeper-server/internal/cache"
	"github.com/bscheucher/keeper-server/internal/config"
	"github.com/bscheucher/keeper-server/internal/handlers"
	"github.com/bscheucher/keeper-server/internal/repo"
	"github.com/bscheucher/keeper-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))

	api := r.Group("/api")

	tokens := auth.NewTokens([]byte(cfg.Auth.SecretKey), cfg.Auth.TokenTTL.Duration())
	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo, auth.NewHasher(), tokens)
	authHandler := handlers.NewAuthHandler(userSvc)
	registerAuthRoutes(api, authHandler)

	protected := api.Group("", auth.RequireToken(tokens))
	noteRepo := repo.NewPGNoteRepo(db)
	noteCache := cache.NewNoteCache(rdb, cfg.Redis.DefaultTTL.Duration())
	noteSvc := service.NewNoteService(noteRepo, noteCache)
	noteHandler := handlers.NewNoteHandler(noteSvc)
	registerNoteRoutes(protected, noteHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Keeper API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"health":  "/health",
			"api":     "/api",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func registerNoteRoutes(api *gin.RouterGroup, h *handlers.NoteHandler) {
	api.GET("/data", h.List)
	api.GET("/data/search", h.Search)
	api.POST("/data", h.Create)
	api.DELETE("/data/:id", h.Delete)
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
}
