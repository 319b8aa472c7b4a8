package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/pycert-prep/backend/internal/auth"
	"github.com/pycert-prep/backend/internal/bank"
	"github.com/pycert-prep/backend/internal/config"
	"github.com/pycert-prep/backend/internal/database"
	"github.com/pycert-prep/backend/internal/exam"
	"github.com/pycert-prep/backend/internal/middleware"
	"github.com/pycert-prep/backend/internal/notegen"
	"github.com/pycert-prep/backend/internal/session"
)

func main() {
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize handlers
	quotas := exam.Default()

	authHandler := auth.NewHandler(db)

	bankStore := bank.NewStore(db)
	bankHandler := bank.NewHandler(bank.NewService(bankStore, quotas))

	sessionStore := session.NewSQLStore(db)
	mockHandler := session.NewHandler(session.NewService(bankStore, sessionStore, quotas))

	noteHandler := notegen.NewHandler(notegen.NewService(bankStore))

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/dashboard", bankHandler.Dashboard).Methods("GET")
	protected.HandleFunc("/quality/deficits", bankHandler.Deficits).Methods("GET")
	protected.HandleFunc("/chapters", bankHandler.ListChapters).Methods("GET")
	protected.HandleFunc("/questions", bankHandler.ListQuestions).Methods("GET")
	protected.HandleFunc("/questions/{id:[0-9]+}", bankHandler.GetQuestion).Methods("GET")

	protected.HandleFunc("/mock/start", mockHandler.Start).Methods("POST")
	protected.HandleFunc("/mock/current", mockHandler.Current).Methods("GET")
	protected.HandleFunc("/mock/answer", mockHandler.Submit).Methods("POST")
	protected.HandleFunc("/mock/next", mockHandler.Advance).Methods("POST")
	protected.HandleFunc("/mock/result", mockHandler.Result).Methods("GET")

	protected.HandleFunc("/admin/bundle/export", bankHandler.Export).Methods("GET")
	protected.HandleFunc("/admin/bundle/import", bankHandler.Import).Methods("POST")
	protected.HandleFunc("/admin/questions/{id:[0-9]+}/note/draft", noteHandler.DraftNote).Methods("POST")

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
