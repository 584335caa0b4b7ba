package scoring_fx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"roamio/internal/repositories"
	"roamio/internal/services"
	"roamio/pkg/utils"
)

var Module = fx.Provide(
	provideTasteProfileRepo,
	provideVisitHistoryRepo,
	provideInterestEmbeddingRepo,
	provideEmbeddingClient,
	provideHybridScorer)

func provideTasteProfileRepo(db *gorm.DB) repositories.TasteProfileRepository {
	return repositories.NewTasteProfileRepository(db)
}

func provideVisitHistoryRepo(db *gorm.DB) repositories.VisitHistoryRepository {
	return repositories.NewVisitHistoryRepository(db)
}

func provideInterestEmbeddingRepo(db *gorm.DB) repositories.InterestEmbeddingRepository {
	return repositories.NewInterestEmbeddingRepository(db)
}

// provideEmbeddingClient returns nil when no embedding provider is
// configured; the explicit scorer then skips the semantic boost.
func provideEmbeddingClient() utils.EmbeddingClientInterface {
	provider := os.Getenv("EMBEDDING_PROVIDER")
	if provider == "" {
		log.Println("EMBEDDING_PROVIDER not set, semantic interest matching disabled")
		return nil
	}
	client, err := utils.NewEmbeddingClient(provider, os.Getenv("EMBEDDING_API_KEY"), os.Getenv("EMBEDDING_MODEL"))
	if err != nil {
		log.Fatalf("Failed to build embedding client: %v", err)
	}
	return client
}

func provideHybridScorer(
	profiles repositories.TasteProfileRepository,
	visits repositories.VisitHistoryRepository,
	embeddings repositories.InterestEmbeddingRepository,
	embedder utils.EmbeddingClientInterface,
) services.HybridScorerInterface {
	weights := services.ScoringWeights{
		Implicit: utils.EnvFloat("SCORE_WEIGHT_IMPLICIT", 0.25),
		Explicit: utils.EnvFloat("SCORE_WEIGHT_EXPLICIT", 0.25),
		Novelty:  utils.EnvFloat("SCORE_WEIGHT_NOVELTY", 0.15),
		Context:  utils.EnvFloat("SCORE_WEIGHT_CONTEXT", 0.15),
		Quality:  utils.EnvFloat("SCORE_WEIGHT_QUALITY", 0.20),
	}

	scorer, err := services.NewHybridScorer(
		services.NewImplicitScorer(visits),
		services.NewExplicitScorer(profiles, embeddings, embedder),
		services.NewNoveltyScorer(visits),
		services.NewContextEngine(),
		profiles,
		services.NewExplainer(),
		weights,
		services.DefaultQualityConfig(),
		utils.EnvBool("SCORE_DEBUG", true),
	)
	if err != nil {
		log.Fatalf("Failed to build hybrid scorer: %v", err)
	}
	return scorer
}
