package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/emmeril/assets/cmd"
	"github.com/emmeril/assets/internal/config"
	"github.com/emmeril/assets/internal/core/logger"
	"github.com/emmeril/assets/internal/inventory/assets"
	"github.com/emmeril/assets/internal/inventory/category"
	"github.com/emmeril/assets/internal/middleware"
	"github.com/emmeril/assets/internal/storage"
	"github.com/emmeril/assets/internal/uploads"
	"github.com/emmeril/assets/pkg/models"
	"github.com/emmeril/assets/pkg/security"
)

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	if len(os.Args) > 1 {
		cmd.Execute(ctx)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	zlog := logger.NewLogger()
	defer zlog.Sync()

	categoryStore := storage.New(cfg.CategoriesFile(), models.Category.IsValid, zlog)
	assetStore := storage.New(cfg.AssetsFile(), models.Asset.IsValid, zlog)

	// Boot-time pass: rewrite both files through the shape check, pruning
	// records that no longer parse.
	if err := categoryStore.Normalize(); err != nil {
		log.Fatalf("Error: %v", err)
	}
	if err := assetStore.Normalize(); err != nil {
		log.Fatalf("Error: %v", err)
	}

	photoStorage := uploads.New(cfg.UploadDir)
	assetService := assets.NewAssetService(assetStore, zlog)
	assetHandler := assets.NewAssetHandler(assetService, photoStorage, zlog)
	categoryService := category.NewCategoryService(categoryStore, assetStore, zlog)
	categoryHandler := category.NewCategoryHandler(categoryService, zlog)
	loginHandler := security.NewLoginHandler(cfg, zlog)

	router := gin.New()
	router.Use(middleware.Recovery(zlog))
	router.Use(middleware.RequestLogger(zlog))
	router.Use(cors.Default())

	auth := security.JWTMiddleware([]byte(cfg.JWTSecret))
	loginHandler.RegisterRoutes(router)
	assetHandler.RegisterRoutes(router, auth)
	categoryHandler.RegisterRoutes(router, auth)

	uploadRoutes := router.Group("/uploads", func(c *gin.Context) {
		c.Header("Cross-Origin-Resource-Policy", "cross-origin")
		c.Next()
	})
	uploadRoutes.Static("/", cfg.UploadDir)

	indexFilePath := filepath.Join(cfg.FrontendDir, "index.html")
	if _, err := os.Stat(indexFilePath); err == nil {
		router.GET("/", func(c *gin.Context) {
			c.File(indexFilePath)
		})
		router.Static("/frontend", cfg.FrontendDir)
		log.Println("Route / registered successfully.")
	} else {
		log.Printf("Warning: %s not found. Route / will not be registered.\n", indexFilePath)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})

	if err := router.Run(cfg.AppHost); err != nil {
		panic(err)
	}
}
