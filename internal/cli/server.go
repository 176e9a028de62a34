package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quizforge-service/internal/app"
	"quizforge-service/internal/config"
	"quizforge-service/internal/domain"
	"quizforge-service/internal/infra/memory"
	pgloader "quizforge-service/internal/infra/postgres"
	redisstore "quizforge-service/internal/infra/redis"
	transport "quizforge-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
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
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var repo app.QuizRepository
	if redisClient != nil {
		repo = redisstore.NewQuizRepository(redisClient)
	} else {
		repo = memory.NewQuizRepository()
	}

	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := seedQuizzes(ctx, repo, pgloader.NewQuizLoader(pool)); err != nil {
			return err
		}
	}

	feed := app.NewResultFeed()
	service := app.NewQuizService(repo, feed)
	handler := transport.NewRouter(service, feed, cfg.HTTP.AllowedOrigins)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz service on :%s", finalPort)
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

// seedQuizzes copies every stored quiz into the active repository at boot.
// Quizzes already present (e.g. in a shared Redis) are left untouched.
func seedQuizzes(ctx context.Context, repo app.QuizRepository, loader *pgloader.QuizLoader) error {
	quizzes, err := loader.LoadQuizzes(ctx)
	if err != nil {
		return err
	}
	seeded := 0
	for _, quiz := range quizzes {
		err := repo.Create(ctx, quiz)
		if err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				continue
			}
			return err
		}
		seeded++
	}
	log.Printf("seeded %d quizzes from postgres", seeded)
	return nil
}
