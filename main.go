package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"tradehub/config"
	"tradehub/db"
	"tradehub/objectstore"
	"tradehub/realtime"
	"tradehub/routes"
	"tradehub/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	gdb, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	repos := db.NewRepositories(gdb)

	blobs, err := openBlobStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatal(err)
	}

	hub := realtime.NewHub()
	sio, relay := realtime.NewSocketIO(hub)
	go func() {
		if err := sio.Serve(); err != nil {
			log.Printf("socket.io server stopped: %v", err)
		}
	}()
	defer sio.Close()

	app := routes.NewApp(routes.Deps{
		Config:       cfg,
		Brands:       services.NewBrandService(repos.Brands),
		Categories:   services.NewCategoryService(repos.Categories),
		Units:        services.NewUnitService(repos.Units),
		Counts:       services.NewCountsService(repos.Categories, repos.Brands, repos.Products),
		Logistics:    services.NewLogisticsService(repos.Logistics, repos.Offers, repos.Bids),
		Requirements: services.NewRequirementService(repos.Requirements, repos.Categories, repos.Brands, repos.Units),
		Uploads:      services.NewUploadService(blobs),
		SocketIO:     sio,
		WebSocket:    hub.Handler(relay),
	})

	go func() {
		<-ctx.Done()
		log.Println("Shutting down")
		if err := app.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	// Start server
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func openBlobStore(ctx context.Context, cfg config.Storage) (objectstore.Blob, error) {
	if cfg.Driver == "gcs" {
		log.Printf("Storing uploads in gs://%s", cfg.Bucket)
		return objectstore.NewGCS(ctx, cfg.Bucket)
	}

	// Create uploads directory if it doesn't exist
	dir := filepath.Join(cfg.LocalRoot, "uploads")
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	log.Printf("Storing uploads in %s", dir)
	return objectstore.NewLocal(cfg.LocalRoot, cfg.PublicBaseURL), nil
}
