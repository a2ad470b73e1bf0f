// Seeds the analytics table with the demo dashboard snapshot.
package main

import (
	"context"

	"github.com/joho/godotenv"

	"creatoriq/internal/adapter/repo"
	"creatoriq/internal/domain"
	"creatoriq/internal/infra"
	"creatoriq/internal/migrate"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("seed: db connection failed")
	}
	defer pool.Close()

	if err := migrate.Migrate(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("seed: failed to apply migrations")
	}

	snapshot := &domain.AnalyticsSnapshot{
		Followers: []int{1200, 1250, 1280, 1295, 1330, 1360, 1400},
		Engagement: []domain.EngagementPoint{
			{Post: 1, Likes: 320, Comments: 25},
			{Post: 2, Likes: 400, Comments: 40},
			{Post: 3, Likes: 290, Comments: 10},
			{Post: 4, Likes: 350, Comments: 20},
			{Post: 5, Likes: 380, Comments: 30},
		},
		BestPostTime: "Wednesday 7 PM",
	}

	if err := repo.NewAnalyticsRepository(pool).Insert(ctx, snapshot); err != nil {
		logger.Fatal().Err(err).Msg("seed: failed to insert analytics snapshot")
	}
	logger.Info().Msg("seeding complete")
}
