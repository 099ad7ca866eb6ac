package api

import (
	"quizforge-api/internal/api/controllers"
	"quizforge-api/internal/api/handlers"
	"quizforge-api/internal/middleware"
	"quizforge-api/internal/services"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handlers bundles everything SetupRoutes wires into the router.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Quiz     *handlers.QuizHandler
	Attempt  *handlers.AttemptHandler
	Usage    *handlers.UsageHandler
	Generate *handlers.GenerateHandler
	User     *handlers.UserHandler
}

func SetupRoutes(db *gorm.DB, authService services.AuthService, h Handlers) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)

	// Public routes
	router.HandleFunc("/auth/register", h.Auth.Register).Methods("POST")
	router.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")
	router.HandleFunc("/health", controllers.HealthCheckHandler(db)).Methods("GET")

	// API routes (protected)
	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	apiRouter.Use(middleware.AuthMiddleware(authService))

	apiRouter.HandleFunc("/generate", h.Generate.GenerateQuiz).Methods("POST")

	apiRouter.HandleFunc("/quizzes", h.Quiz.ListQuizzes).Methods("GET")
	apiRouter.HandleFunc("/quizzes", h.Quiz.CreateQuiz).Methods("POST")
	apiRouter.HandleFunc("/quizzes/{id}", h.Quiz.GetQuiz).Methods("GET")
	apiRouter.HandleFunc("/quizzes/{id}", h.Quiz.DeleteQuiz).Methods("DELETE")

	apiRouter.HandleFunc("/quizzes/{id}/attempts", h.Attempt.SubmitAttempt).Methods("POST")
	apiRouter.HandleFunc("/attempts", h.Attempt.ListAttempts).Methods("GET")

	apiRouter.HandleFunc("/usage", h.Usage.GetCurrentUsage).Methods("GET")

	apiRouter.HandleFunc("/me/stats", h.User.GetStats).Methods("GET")
	apiRouter.HandleFunc("/me", h.User.UpdateProfile).Methods("PUT")
	apiRouter.HandleFunc("/me", h.User.DeleteAccount).Methods("DELETE")

	return router
}
