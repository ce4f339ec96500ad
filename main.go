package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/photoclass/photoclassbackend/capture"
	"github.com/photoclass/photoclassbackend/config"
	"github.com/photoclass/photoclassbackend/database"
	"github.com/photoclass/photoclassbackend/handlers"
	"github.com/photoclass/photoclassbackend/media"
	"github.com/photoclass/photoclassbackend/realtime"
	"github.com/photoclass/photoclassbackend/repository"
	"github.com/photoclass/photoclassbackend/workers"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	storagePaths := []string{cfg.ThumbnailsPath, filepath.Dir(cfg.DatabasePath)}
	for _, p := range storagePaths {
		log.Printf("Ensuring storage directory exists: %s", p)
		if err := os.MkdirAll(p, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create storage directory %s: %v", p, err)
		}
	}

	gormDB, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(gormDB); err != nil {
		log.Fatalf("FATAL: Failed to migrate record-store schema: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("FATAL: Failed to get underlying sql.DB: %v", err)
	}
	defer sqlDB.Close()

	if err := database.InitThumbnailTable(sqlDB); err != nil {
		log.Fatalf("FATAL: Failed to initialize thumbnail table: %v", err)
	}

	mediaSubDirs := map[media.AssetType]string{
		media.AssetTypeThumbnail: filepath.Base(cfg.ThumbnailsPath),
	}
	mediaStore, err := media.NewLocalStorage(cfg.MediaStoragePath, mediaSubDirs)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize media store: %v", err)
	}

	store := repository.NewStore(database.NewGormKV(gormDB))
	photoRepo := repository.NewPhotoRepository(store)
	studentRepo := repository.NewStudentRepository(store)
	projectRepo := repository.NewProjectRepository(store, studentRepo, photoRepo)
	classRepo := repository.NewClassRepository(store)
	sessionRepo := repository.NewSessionRepository(store)

	hub := realtime.NewHub()
	go hub.Run()

	log.Printf("Initializing thumbnail worker pool (Workers: %d, Queue Size: %d)...", cfg.NumThumbnailWorkers, cfg.ThumbnailQueueSize)
	thumbGen := workers.NewThumbnailGenerator(cfg, sqlDB, mediaStore, hub, cfg.ThumbnailQueueSize, cfg.NumThumbnailWorkers)
	defer thumbGen.Stop()

	camera := capture.NewController(cfg.CameraDeviceID)
	defer camera.Stop()

	log.Printf("Using database: %s", cfg.DatabasePath)
	log.Printf("Storing thumbnails in: %s", cfg.ThumbnailsPath)
	log.Printf("Thumbnail max size (longest side): %dpx", cfg.ThumbnailMaxSize)
	log.Printf("Webcam device index: %d", cfg.CameraDeviceID)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"}, //TODO: configurable
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	projectHandler := &handlers.ProjectHandler{Projects: projectRepo}
	classHandler := &handlers.ClassHandler{Classes: classRepo}
	studentHandler := &handlers.StudentHandler{Students: studentRepo, Hub: hub}
	photoHandler := &handlers.PhotoHandler{Photos: photoRepo, DB: sqlDB, Media: mediaStore, Hub: hub}
	exportHandler := &handlers.ExportHandler{Projects: projectRepo, Students: studentRepo, Photos: photoRepo, Sessions: sessionRepo}
	archivesHandler := &handlers.ArchivesHandler{Projects: projectRepo, Photos: photoRepo}
	settingsHandler := &handlers.SettingsHandler{Sessions: sessionRepo}
	cameraHandler := &handlers.CameraHandler{Camera: camera}
	sessionHandler := &handlers.SessionHandler{
		Sessions: sessionRepo,
		Projects: projectRepo,
		Students: studentRepo,
		Photos:   photoRepo,
		Camera:   camera,
		ThumbGen: thumbGen,
		Hub:      hub,
	}
	sessionHandler.Restore()

	r.Route("/api", func(r chi.Router) {
		r.Route("/projects", func(r chi.Router) {
			r.Post("/", projectHandler.CreateProject)
			r.Get("/", projectHandler.ListProjects)
			r.Route("/{project_id}", func(r chi.Router) {
				r.Get("/", projectHandler.GetProject)
				r.Put("/", projectHandler.RenameProject)
				r.Delete("/", projectHandler.DeleteProject)
				r.Get("/export", exportHandler.ExportCSV)

				r.Route("/students", func(r chi.Router) {
					r.Get("/", studentHandler.ListStudents)
					r.Post("/", studentHandler.AddStudent)
					r.Post("/import", studentHandler.ImportCSV)
					r.Put("/{student_id}", studentHandler.UpdateStudent)
					r.Get("/{student_id}/photos", photoHandler.ListByStudent)
				})

				r.Route("/photos", func(r chi.Router) {
					r.Get("/", photoHandler.ListByProject)
					r.Delete("/", photoHandler.DeleteByProject)
				})
			})
		})

		r.Route("/classes", func(r chi.Router) {
			r.Get("/", classHandler.ListClasses)
			r.Post("/", classHandler.CreateClass)
		})

		r.Route("/photos/{photo_id}", func(r chi.Router) {
			r.Delete("/", photoHandler.DeletePhoto)
			r.Get("/thumbnail", photoHandler.ServeThumbnail)
		})

		r.Route("/session", func(r chi.Router) {
			r.Post("/", sessionHandler.Activate)
			r.Get("/", sessionHandler.Get)
			r.Post("/capture", sessionHandler.Capture)
			r.Post("/advance", sessionHandler.Advance)
			r.Post("/roster/reload", sessionHandler.ReloadRoster)
			r.Get("/photos", sessionHandler.CurrentPhotos)
			r.Delete("/photos", sessionHandler.ClearPhotos)
		})

		r.Route("/camera", func(r chi.Router) {
			r.Get("/", cameraHandler.Status)
			r.Post("/start", cameraHandler.Start)
			r.Post("/stop", cameraHandler.Stop)
			r.Post("/clear-error", cameraHandler.ClearError)
		})

		r.Get("/archives", archivesHandler.List)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/theme", settingsHandler.GetTheme)
			r.Put("/theme", settingsHandler.SetTheme)
		})

		r.Get("/ws", hub.ServeWS)

		thumbnailSubDir := filepath.Base(cfg.ThumbnailsPath)
		r.Get(fmt.Sprintf("/%s/*", thumbnailSubDir), handlers.AssetServer(cfg.MediaStoragePath, thumbnailSubDir))
		log.Printf("Registered thumbnail server at /%s/*", thumbnailSubDir)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port
	fmt.Printf("Server starting on http://localhost:%s\n", port)
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
