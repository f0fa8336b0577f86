package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"couple-quiz-service/internal/app"
	"couple-quiz-service/internal/config"
	"couple-quiz-service/internal/domain"
	"couple-quiz-service/internal/infra/memory"
	pginfra "couple-quiz-service/internal/infra/postgres"
	redisinfra "couple-quiz-service/internal/infra/redis"
	transport "couple-quiz-service/internal/transport/http"
)

// NewServeCmd builds the CLI subcommand to start the server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
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

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var quizRepo app.QuizRepository = memory.NewQuizRepository()
	var bankLoader memory.BankLoader = memory.NewStaticBankLoader(sampleBank())
	if pool != nil {
		quizRepo = pginfra.NewQuizRepository(pool)
		bankLoader = pginfra.NewBankLoader(pool)
	}

	bankTTL := config.TTLDuration(cfg.Bank.TTL, 10*time.Minute)
	var bank app.QuestionBank
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		bank = redisinfra.NewQuestionBank(redisClient, bankLoader, bankTTL)
	} else {
		bank = memory.NewQuestionBank(bankLoader, bankTTL)
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 7*24*time.Hour)
	quizService := app.NewQuizService(quizRepo, quizTTL)
	answerService := app.NewAnswerService(quizRepo)
	questionService := app.NewQuestionService(bank)
	resultsService := app.NewResultsService(quizRepo)

	router := transport.NewRouter(quizService, answerService, questionService, resultsService, transport.Config{
		ShareDomain:    cfg.Share.Domain,
		AllowedOrigins: cfg.Share.AllowedOrigins,
	})

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting couple quiz service on :%s", finalPort)
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

// sampleBank provides a minimal question bank for postgres-less runs; the
// seeded database replaces it in production.
func sampleBank() map[string][]domain.BankQuestion {
	yesNo := []domain.Option{{Text: "Yes", Index: 0}, {Text: "No", Index: 1}}
	return map[string][]domain.BankQuestion{
		"en": {
			{ID: "bank-en-1", Language: "en", Type: "yesno", QuestionText: "Does your partner prefer coffee over tea?", Options: yesNo},
			{ID: "bank-en-2", Language: "en", Type: "yesno", QuestionText: "Would your partner rather stay in than go out?", Options: yesNo},
			{ID: "bank-en-3", Language: "en", Type: "multiple", QuestionText: "What is your partner's ideal vacation?", Options: []domain.Option{
				{Text: "Beach", Index: 0}, {Text: "Mountains", Index: 1}, {Text: "City trip", Index: 2}, {Text: "Road trip", Index: 3},
			}},
		},
	}
}
