package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/saulo-duarte/mindpop-lambda/internal/attempt"
	"github.com/saulo-duarte/mindpop-lambda/internal/auth"
	"github.com/saulo-duarte/mindpop-lambda/internal/config"
	"github.com/saulo-duarte/mindpop-lambda/internal/course"
	"github.com/saulo-duarte/mindpop-lambda/internal/enrollment"
	"github.com/saulo-duarte/mindpop-lambda/internal/profile"
	"github.com/saulo-duarte/mindpop-lambda/internal/question"
	"github.com/saulo-duarte/mindpop-lambda/internal/quiz"
	"github.com/saulo-duarte/mindpop-lambda/internal/realtime"
	"github.com/saulo-duarte/mindpop-lambda/internal/workflow"
)

type RouterConfig struct {
	AuthHandler       *auth.Handler
	CourseHandler     *course.Handler
	QuizHandler       *quiz.Handler
	QuestionHandler   *question.Handler
	EnrollmentHandler *enrollment.Handler
	AttemptHandler    *attempt.Handler
	WorkflowHandler   *workflow.Handler
	RealtimeHandler   *realtime.Handler

	CORSOrigins    []string
	RequestTimeout time.Duration
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	if cfg.RealtimeHandler != nil {
		r.With(auth.AuthMiddleware).Get("/ws", cfg.RealtimeHandler.HandleWebSocket)
	}

	r.Group(func(r chi.Router) {
		if cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(cfg.RequestTimeout))
		}

		r.Mount("/auth", auth.Routes(cfg.AuthHandler))

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)

			courses := course.Routes(cfg.CourseHandler)
			courses.Get("/{id}/quizzes", cfg.QuizHandler.ListForCourse)
			courses.Post("/{id}/enroll", cfg.EnrollmentHandler.Enroll)

			quizzes := quiz.Routes(cfg.QuizHandler)
			quizzes.Get("/{id}/questions", cfg.QuestionHandler.ListForQuiz)
			quizzes.With(auth.RequireRole(auth.RoleAdmin)).Post("/{id}/questions", cfg.QuestionHandler.AddQuestion)
			workflow.QuizRoutes(quizzes, cfg.WorkflowHandler)

			attempts := attempt.Routes(cfg.AttemptHandler)
			workflow.AttemptRoutes(attempts, cfg.WorkflowHandler)

			r.Mount("/users", profile.Routes(cfg.AuthHandler))
			r.Mount("/courses", courses)
			r.Mount("/quizzes", quizzes)
			r.Mount("/questions", question.Routes(cfg.QuestionHandler))
			r.Mount("/enrollments", enrollment.Routes(cfg.EnrollmentHandler))
			r.Mount("/attempts", attempts)
		})
	})
	return r
}
