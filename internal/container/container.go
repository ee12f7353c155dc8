package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/saulo-duarte/mindpop-lambda/internal/attempt"
	"github.com/saulo-duarte/mindpop-lambda/internal/auth"
	"github.com/saulo-duarte/mindpop-lambda/internal/config"
	"github.com/saulo-duarte/mindpop-lambda/internal/course"
	"github.com/saulo-duarte/mindpop-lambda/internal/database"
	"github.com/saulo-duarte/mindpop-lambda/internal/enrollment"
	"github.com/saulo-duarte/mindpop-lambda/internal/profile"
	"github.com/saulo-duarte/mindpop-lambda/internal/question"
	"github.com/saulo-duarte/mindpop-lambda/internal/quiz"
	"github.com/saulo-duarte/mindpop-lambda/internal/realtime"
	"github.com/saulo-duarte/mindpop-lambda/internal/router"
	"github.com/saulo-duarte/mindpop-lambda/internal/store"
	"github.com/saulo-duarte/mindpop-lambda/internal/workflow"
	"gorm.io/gorm"
)

const sweepInterval = time.Minute

type Container struct {
	Config config.Config
	DB     *gorm.DB
	Bus    *store.Bus

	AuthService *auth.Service
	AuthHandler *auth.Handler

	CourseContainer     *course.Container
	QuizContainer       *quiz.QuizContainer
	QuestionContainer   *question.Container
	EnrollmentContainer *enrollment.Container
	AttemptContainer    *attempt.Container
	WorkflowContainer   *workflow.Container

	Hub             *realtime.Hub
	RealtimeHandler *realtime.Handler
}

// Models lists every table the service owns, in migration order.
func Models() []interface{} {
	return []interface{}{
		&profile.Row{},
		&course.Row{},
		&quiz.Row{},
		&question.Row{},
		&attempt.Row{},
		&enrollment.Row{},
	}
}

// New loads configuration from the environment, connects and migrates the
// database and wires every service.
func New(ctx context.Context) (*Container, error) {
	cfg := config.Load()
	config.Init(cfg.LogLevel)
	auth.Init()

	db, err := database.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db, Models()...); err != nil {
		return nil, err
	}
	return Build(ctx, cfg, db)
}

// Build wires the services over an open, migrated database.
func Build(ctx context.Context, cfg config.Config, db *gorm.DB) (*Container, error) {
	bus := store.NewBus()

	courseRepo := course.NewRepository(db)
	quizRepo := quiz.NewRepository(db)

	questionContainer := question.NewContainer(db, quizRepo, bus)
	quizContainer := quiz.NewQuizContainer(db, courseRepo, bus, questionContainer.Service)
	enrollmentContainer := enrollment.NewContainer(db, courseRepo, quizContainer.Service, bus)
	courseContainer := course.NewContainer(db, bus,
		quizContainer.Service,
		questionContainer.Service,
		enrollmentContainer.Service,
	)
	attemptContainer := attempt.NewContainer(db, bus)
	workflowContainer := workflow.NewContainer(db,
		quizContainer.Service,
		questionContainer.Service,
		attemptContainer,
		enrollmentContainer,
		cfg.SessionRetention,
	)

	authService := auth.NewService(profile.NewRepository(db), cfg.TokenTTL)
	if err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return nil, fmt.Errorf("bootstrap admin: %w", err)
	}

	c := &Container{
		Config:              cfg,
		DB:                  db,
		Bus:                 bus,
		AuthService:         authService,
		AuthHandler:         auth.NewHandler(authService, cfg.CookieDomain),
		CourseContainer:     courseContainer,
		QuizContainer:       quizContainer,
		QuestionContainer:   questionContainer,
		EnrollmentContainer: enrollmentContainer,
		AttemptContainer:    attemptContainer,
		WorkflowContainer:   workflowContainer,
	}
	if cfg.EnableRealtime {
		c.Hub = realtime.NewHub()
		c.RealtimeHandler = realtime.NewHandler(c.Hub, cfg.CORSOrigins)
	}
	return c, nil
}

// Run starts the background loops. They stop when ctx is done.
func (c *Container) Run(ctx context.Context) {
	go c.WorkflowContainer.Registry.Run(ctx, sweepInterval)

	if c.Hub != nil {
		events, unsubscribe := c.Bus.Subscribe(64)
		go func() {
			defer unsubscribe()
			c.Hub.Run(ctx, events)
		}()
	}
}

func (c *Container) Handler() http.Handler {
	return router.New(router.RouterConfig{
		AuthHandler:       c.AuthHandler,
		CourseHandler:     c.CourseContainer.Handler,
		QuizHandler:       c.QuizContainer.Handler,
		QuestionHandler:   c.QuestionContainer.Handler,
		EnrollmentHandler: c.EnrollmentContainer.Handler,
		AttemptHandler:    c.AttemptContainer.Handler,
		WorkflowHandler:   c.WorkflowContainer.Handler,
		RealtimeHandler:   c.RealtimeHandler,
		CORSOrigins:       c.Config.CORSOrigins,
		RequestTimeout:    c.Config.RequestTimeout,
	})
}
