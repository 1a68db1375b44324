package cli

import (
	"context"
	"log"
	"time"

	"drb-quiz-service/internal/app"
	"drb-quiz-service/internal/clock"
	"drb-quiz-service/internal/config"
	"drb-quiz-service/internal/infra/file"
	"drb-quiz-service/internal/infra/memory"
	pgloader "drb-quiz-service/internal/infra/postgres"
	redisinfra "drb-quiz-service/internal/infra/redis"
	"drb-quiz-service/internal/questions"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

// sessionStore is a session repository that can count live sessions.
type sessionStore interface {
	app.SessionRepository
	Live(ctx context.Context) (int, error)
}

// buildService wires storage from cfg. Redis and Postgres are used only when configured.
func buildService(ctx context.Context, cfg config.Config) (*app.QuizService, sessionStore, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	loaders := memory.ChainLoader{}
	if cfg.Quiz.BankFile != "" {
		loaders = append(loaders, file.NewBankLoader(cfg.Quiz.BankFile))
	}
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, cleanup, err
		}
		closers = append(closers, pool.Close)
		loaders = append(loaders, pgloader.NewBankLoader(pool))
	}
	loaders = append(loaders, memory.NewStaticBankLoader(questions.Builtin()))

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, func() {
			if err := redisClient.Close(); err != nil {
				log.Printf("redis close: %v", err)
			}
		})
	}

	bankTTL := config.Duration(cfg.Quiz.TTL, 10*time.Minute)
	var banks app.BankRepository
	var store sessionStore
	if redisClient != nil {
		banks = redisinfra.NewBankRepository(redisClient, loaders, bankTTL)
		store = redisinfra.NewSessionStore(redisClient, config.Duration(cfg.Redis.TTL, 10*time.Minute))
	} else {
		banks = memory.NewBankRepository(loaders, bankTTL)
		store = memory.NewSessionStore()
	}

	delay := config.Duration(cfg.Quiz.AdvanceDelay, app.DefaultAdvanceDelay)
	service := app.NewQuizService(store, banks, clock.Real{}, app.WithEngineOptions(app.WithAdvanceDelay(delay)))
	return service, store, cleanup, nil
}
