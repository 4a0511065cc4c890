package app

import (
	"context"
	"fmt"
	"log"
	"os"

	"vitrine-catalogo/app/controller"
	"vitrine-catalogo/app/router"
	"vitrine-catalogo/db"
	"vitrine-catalogo/repository"
	"vitrine-catalogo/service"
)

// envOr returns the environment variable value or a default.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Initialize initializes the application
func Initialize(ctx context.Context) error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	mode := service.ModeProducts
	if os.Getenv("COLORS_MODE") == "true" {
		mode = service.ModeColors
	}

	// Source is either a directory holding the catalog JSON files or a
	// base URL serving them
	source := envOr("CATALOG_SOURCE", "./data")
	baseURL := envOr("BASE_URL", "http://localhost:8080")
	publicURL := envOr("PUBLIC_URL", baseURL)
	phone := envOr("WHATSAPP_PHONE", "5519988822112")
	bulkEntryID := envOr("BULK_ENTRY_ID", "p05")

	// Load the catalog document. A failed load is not fatal: the API keeps
	// serving with an empty list and the inline error message.
	catalogService := service.NewCatalogService(source, mode)
	if err := catalogService.Load(ctx); err != nil {
		log.Printf("⚠️  Initialize: Catalog load failed, serving empty catalog: %v", err)
	}

	// Optionally overlay images discovered in a Drive folder onto the
	// catalog entries
	if folderID := os.Getenv("DRIVE_FOLDER_ID"); folderID != "" {
		credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		if credentialsPath == "" {
			return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS environment variable is not set")
		}

		driveService, err := service.NewDriveService(credentialsPath)
		if err != nil {
			return err
		}

		images, err := driveService.ListEntryImages(folderID)
		if err != nil {
			log.Printf("⚠️  Initialize: Drive image discovery failed: %v", err)
		} else {
			catalogService.ApplyDriveImages(images)
			log.Printf("✓ Initialize: Applied Drive images for %d entries", len(images))
		}
	}

	// Remote review mirror; disabled unless the repository coordinates are
	// configured
	githubService := service.NewGitHubService(
		os.Getenv("GITHUB_OWNER"),
		os.Getenv("GITHUB_REPO"),
		os.Getenv("GITHUB_TOKEN"),
		os.Getenv("GITHUB_BRANCH"),
	)
	if githubService.Enabled() {
		log.Printf("✓ Initialize: Review mirror enabled (%s/%s)", os.Getenv("GITHUB_OWNER"), os.Getenv("GITHUB_REPO"))
	} else {
		log.Printf("⚠️  Initialize: Review mirror disabled, reviews stay local")
	}

	// Initialize repositories
	reviewRepo := repository.NewReviewRepository()
	bannerRepo := repository.NewBannerRepository()

	// Initialize services
	presenterService := service.NewPresenterService(catalogService, publicURL, bulkEntryID)
	cartService := service.NewCartService(catalogService, bulkEntryID, phone)
	reviewService := service.NewReviewService(reviewRepo, githubService)
	exportService := service.NewExportService(presenterService, baseURL)

	// Create controllers
	controllers := &router.Controllers{
		Catalog: controller.NewCatalogController(catalogService, presenterService, reviewService),
		Cart:    controller.NewCartController(cartService),
		Review:  controller.NewReviewController(catalogService, reviewService),
		Banner:  controller.NewBannerController(bannerRepo),
		Export:  controller.NewExportController(exportService),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
