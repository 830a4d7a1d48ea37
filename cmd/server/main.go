package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/joshi510/careerbackend/internal/auth"
	"github.com/joshi510/careerbackend/internal/catalog"
	"github.com/joshi510/careerbackend/internal/config"
	"github.com/joshi510/careerbackend/internal/database"
	"github.com/joshi510/careerbackend/internal/interpreter"
	"github.com/joshi510/careerbackend/internal/middleware"
	"github.com/joshi510/careerbackend/internal/models"
	"github.com/joshi510/careerbackend/internal/notes"
	"github.com/joshi510/careerbackend/internal/sessions"
)

func main() {
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if cfg.SeedCatalog {
		if err := catalog.Seed(db); err != nil {
			log.Fatalf("Failed to seed catalog: %v", err)
		}
	}

	secs, err := catalog.Load(db)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	cat, err := catalog.New(secs)
	if err != nil {
		log.Fatalf("Invalid catalog: %v", err)
	}
	log.Printf("Catalog loaded: %d sections, %d questions", cat.TotalSections(), cat.TotalQuestions())

	// Initialize services and handlers
	store := sessions.NewPostgresStore(db)
	sessionService := sessions.NewService(store, cat)
	interpService := interpreter.NewService(store, interpreter.NewClient(cfg), cfg.InterpreterTimeout)

	authHandler := auth.NewHandler(db, cfg.JWTSecret)
	sessionHandler := sessions.NewHandler(sessionService, interpService)
	notesHandler := notes.NewHandler(db)
	mw := middleware.New(cfg.JWTSecret)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(mw.Authenticate)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/tests/start", sessionHandler.StartTest).Methods("POST")
	protected.HandleFunc("/tests/sections", sessionHandler.ListSections).Methods("GET")
	protected.HandleFunc("/tests/sections/{order:[0-9]+}/questions", sessionHandler.GetSectionQuestions).Methods("GET")
	protected.HandleFunc("/tests/sections/{order:[0-9]+}/submit", sessionHandler.SubmitSection).Methods("POST")
	protected.HandleFunc("/tests/results", sessionHandler.ListResults).Methods("GET")
	protected.HandleFunc("/tests/{id}/status", sessionHandler.GetStatus).Methods("GET")
	protected.HandleFunc("/tests/{id}/complete", sessionHandler.CompleteTest).Methods("POST")
	protected.HandleFunc("/tests/{id}/result", sessionHandler.GetResult).Methods("GET")
	protected.HandleFunc("/tests/{id}/interpretation", sessionHandler.RequestInterpretation).Methods("POST")
	protected.HandleFunc("/tests/{id}/interpretation", sessionHandler.GetInterpretation).Methods("GET")

	// Counsellor routes
	counsellor := protected.PathPrefix("/sessions").Subrouter()
	counsellor.Use(mw.RequireRole(models.RoleCounsellor))
	counsellor.HandleFunc("/{id}/notes", notesHandler.CreateNote).Methods("POST")
	counsellor.HandleFunc("/{id}/notes", notesHandler.ListNotes).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	log.Printf("Server starting on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
