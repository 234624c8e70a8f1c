package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"studymate-service/internal/app"
	"studymate-service/internal/auth"
	"studymate-service/internal/config"
	"studymate-service/internal/infra/memory"
	infrapg "studymate-service/internal/infra/postgres"
	infraredis "studymate-service/internal/infra/redis"
	"studymate-service/internal/llm"
	transport "studymate-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the StudyMate server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8000"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var userStore app.UserStore = memory.NewUserStore()
	var attemptStore app.AttemptStore = memory.NewAttemptStore()
	if pool != nil {
		userStore = infrapg.NewUserStore(pool)
		attemptStore = infrapg.NewAttemptStore(pool)
	}

	sessionTTL := config.TTLDuration(cfg.Session.TTL, 30*time.Minute)
	var sessionStore app.SessionStore = memory.NewSessionStore(sessionTTL)
	if redisClient != nil {
		sessionStore = infraredis.NewSessionStore(redisClient, sessionTTL)
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM)
	if err != nil {
		return err
	}

	tokenTTL := config.TTLDuration(cfg.Auth.TokenTTL, time.Hour)
	signer := auth.NewTokenSigner(cfg.Auth.JWTSecret, tokenTTL)

	authService := app.NewAuthService(userStore, signer)
	studyService := app.NewStudyService(attemptStore)
	quizService := app.NewQuizService(provider, sessionStore, studyService)
	tutorService := app.NewTutorService(provider, studyService)

	router := transport.NewRouter(
		transport.NewAuthHandler(authService),
		transport.NewQuizHandler(quizService, studyService),
		transport.NewTutorHandler(tutorService),
		transport.NewWSHandler(tutorService, signer),
		signer,
	)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // chat completions can take a while
	}

	go func() {
		log.Printf("starting studymate service on :%s (llm=%s model=%s)", finalPort, cfg.LLM.Provider, provider.ModelID())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
