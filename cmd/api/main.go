package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/fkhayef/foodmate/docs"
	"github.com/fkhayef/foodmate/internal/chat"
	"github.com/fkhayef/foodmate/internal/comment"
	"github.com/fkhayef/foodmate/internal/config"
	"github.com/fkhayef/foodmate/internal/database"
	"github.com/fkhayef/foodmate/internal/enrollment"
	"github.com/fkhayef/foodmate/internal/food"
	"github.com/fkhayef/foodmate/internal/group"
	"github.com/fkhayef/foodmate/internal/member"
	mw "github.com/fkhayef/foodmate/pkg/middleware"
)

// @title        Foodmate API
// @version      1.0
// @description  Time-bounded food meetup groups with bounded-capacity enrollment
// @BasePath     /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	// Member feature
	memberRepo := member.NewRepository(db)
	memberService := member.NewService(memberRepo, []byte(cfg.JWTSecret))
	memberHandler := member.NewHandler(memberService)

	// Food catalog
	foodRepo := food.NewRepository(db)
	foodHandler := food.NewHandler(foodRepo)

	// Chat room companion records
	chatRepo := chat.NewRepository(db)

	// Enrollment feature
	enrollmentRepo := enrollment.NewRepository(db)
	enrollmentService := enrollment.NewService(enrollmentRepo)
	enrollmentHandler := enrollment.NewHandler(enrollmentService)

	// Discussion threads
	commentRepo := comment.NewRepository(db)
	commentService := comment.NewService(commentRepo)
	commentHandler := comment.NewHandler(commentService)

	// Group feature (lifecycle manager; owns the /groups subtree)
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo, foodRepo, enrollmentRepo, chatRepo)
	groupHandler := group.NewHandler(groupService, enrollmentHandler, commentHandler)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", memberHandler.Routes())

		r.Group(func(r chi.Router) {
			r.Use(mw.Auth([]byte(cfg.JWTSecret)))

			r.Get("/members/me", memberHandler.Me)
			r.Mount("/foods", foodHandler.Routes())
			r.Mount("/groups", groupHandler.Routes())
			r.Mount("/enrollments", enrollmentHandler.Routes())
		})
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
