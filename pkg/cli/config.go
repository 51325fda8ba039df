package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kakeibo/pkg/adapter"
	"github.com/m-mizutani/kakeibo/pkg/model"
	"github.com/m-mizutani/kakeibo/pkg/repository"
	"github.com/m-mizutani/kakeibo/pkg/usecase/assistant"
	"github.com/m-mizutani/kakeibo/pkg/vector"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// config holds configuration values
type config struct {
	// Stores
	dbPath     string
	budgetFile string

	// Gemini
	geminiProject   string
	geminiLocation  string
	generativeModel string
	embeddingModel  string
	embeddingDim    int64

	logLevel string
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "db",
			Aliases:     []string{"d"},
			Usage:       "Path to the SQLite database file",
			Value:       "kakeibo.db",
			Sources:     cli.EnvVars("KAKEIBO_DB"),
			Destination: &cfg.dbPath,
		},
		&cli.StringFlag{
			Name:        "budgets",
			Usage:       "Path to a YAML file with per-category budgets",
			Sources:     cli.EnvVars("KAKEIBO_BUDGETS"),
			Destination: &cfg.budgetFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("KAKEIBO_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
	}
}

// geminiFlags returns flags for LLM-related configuration with destination config
func geminiFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini",
			Sources:     cli.EnvVars("GEMINI_PROJECT_ID"),
			Destination: &cfg.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini",
			Value:       "us-central1",
			Sources:     cli.EnvVars("GEMINI_LOCATION"),
			Destination: &cfg.geminiLocation,
		},
		&cli.StringFlag{
			Name:        "generative-model",
			Usage:       "Gemini model for intent classification",
			Value:       "gemini-2.5-flash",
			Sources:     cli.EnvVars("KAKEIBO_GENERATIVE_MODEL"),
			Destination: &cfg.generativeModel,
		},
		&cli.StringFlag{
			Name:        "embedding-model",
			Usage:       "Gemini model for embeddings",
			Value:       "gemini-embedding-001",
			Sources:     cli.EnvVars("KAKEIBO_EMBEDDING_MODEL"),
			Destination: &cfg.embeddingModel,
		},
		&cli.IntFlag{
			Name:        "embedding-dim",
			Usage:       "Embedding dimensionality, must match the vector index",
			Value:       768,
			Sources:     cli.EnvVars("KAKEIBO_EMBEDDING_DIM"),
			Destination: &cfg.embeddingDim,
		},
	}
}

// newRepository creates a new repository instance
func (cfg *config) newRepository(ctx context.Context) (repository.Repository, error) {
	if cfg.dbPath == "" {
		return nil, goerr.New("db path is required")
	}
	return repository.NewSQLite(ctx, cfg.dbPath)
}

// newIndex creates a new vector index instance sharing the database file
func (cfg *config) newIndex(ctx context.Context) (vector.Index, error) {
	if cfg.dbPath == "" {
		return nil, goerr.New("db path is required")
	}
	return vector.NewSQLite(ctx, cfg.dbPath, int(cfg.embeddingDim))
}

// newGemini creates a new Gemini adapter instance
func (cfg *config) newGemini(ctx context.Context) (adapter.Gemini, error) {
	if cfg.geminiProject == "" {
		return nil, goerr.New("gemini-project is required")
	}

	return adapter.NewGemini(ctx, cfg.geminiProject, cfg.geminiLocation,
		adapter.WithGenerativeModel(cfg.generativeModel),
		adapter.WithEmbeddingModel(cfg.embeddingModel),
		adapter.WithEmbeddingDim(int(cfg.embeddingDim)),
	)
}

// newUseCase assembles the assistant with all of its dependencies
func (cfg *config) newUseCase(ctx context.Context) (*assistant.UseCase, error) {
	repo, err := cfg.newRepository(ctx)
	if err != nil {
		return nil, err
	}

	index, err := cfg.newIndex(ctx)
	if err != nil {
		return nil, err
	}

	gemini, err := cfg.newGemini(ctx)
	if err != nil {
		return nil, err
	}

	budgets, err := cfg.loadBudgets()
	if err != nil {
		return nil, err
	}

	return assistant.New(assistant.NewInput{
		Repo:    repo,
		Index:   index,
		Gemini:  gemini,
		Budgets: budgets,
	})
}

// budgetFileSchema is the YAML layout of the budget configuration
type budgetFileSchema struct {
	Budgets map[string]float64 `yaml:"budgets"`
}

func (cfg *config) loadBudgets() (map[model.Category]float64, error) {
	if cfg.budgetFile == "" {
		return nil, nil
	}

	data, err := os.ReadFile(cfg.budgetFile)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read budget file", goerr.V("path", cfg.budgetFile))
	}

	var parsed budgetFileSchema
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, goerr.Wrap(err, "failed to parse budget file", goerr.V("path", cfg.budgetFile))
	}

	budgets := make(map[model.Category]float64, len(parsed.Budgets))
	for name, limit := range parsed.Budgets {
		budgets[model.NormalizeCategory(name)] = limit
	}
	return budgets, nil
}
