package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/buildeval/assessment-rag/internal/config"
	"github.com/buildeval/assessment-rag/internal/core/ports"
	"github.com/buildeval/assessment-rag/internal/core/usecase"
	"github.com/buildeval/assessment-rag/internal/infrastructure/chunking"
	"github.com/buildeval/assessment-rag/internal/infrastructure/extractor"
	"github.com/buildeval/assessment-rag/internal/infrastructure/llm/ollama"
	"github.com/buildeval/assessment-rag/internal/infrastructure/queue/nats"
	"github.com/buildeval/assessment-rag/internal/infrastructure/repository/postgres"
	"github.com/buildeval/assessment-rag/internal/infrastructure/resilience"
	"github.com/buildeval/assessment-rag/internal/infrastructure/storage/localfs"
	"github.com/buildeval/assessment-rag/internal/infrastructure/vector/qdrant"
)

// App wires the full dependency graph once for both binaries. The api serves
// AnswerUC/SearchUC/IngestUC; the worker consumes Queue and runs ProcessUC.
type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue ports.MessageQueue
	Repo  ports.DocumentRepository

	AnswerUC  ports.QuestionService
	SearchUC  ports.SearchService
	IngestUC  ports.DocumentIngestor
	ProcessUC ports.DocumentProcessor

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	// Query-path calls fail fast (single attempt), ingestion retries with a
	// shared circuit breaker.
	servingExec := resilience.NewExecutor(resilience.ServingConfig())
	ingestExec := resilience.NewExecutor(resilience.IngestionConfig())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: ingestExec,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	var (
		servingEmbedder ports.Embedder
		ingestEmbedder  ports.Embedder
		generator       ports.AnswerGenerator
		store           ports.VectorStore
	)
	if cfg.UseFakeServices {
		fakeEmbedder := ollama.NewFakeEmbedder()
		servingEmbedder = fakeEmbedder
		ingestEmbedder = fakeEmbedder
		generator = ollama.NewFakeGenerator()
		store = qdrant.NewMemoryStore(cfg.QdrantCollection)
		logger.Warn("running with in-process fake services",
			"collection", cfg.QdrantCollection)
	} else {
		client := ollama.New(cfg.OllamaURL, cfg.OllamaGenModel, cfg.OllamaEmbedModel)
		servingEmbedder = ollama.NewEmbedder(client, servingExec)
		ingestEmbedder = ollama.NewEmbedder(client, ingestExec)
		generator = ollama.NewGenerator(client, servingExec)
		store = qdrant.New(cfg.QdrantURL, cfg.QdrantCollection)
	}

	analyzer := usecase.NewQueryAnalyzer()
	filters := usecase.NewFilterBuilder()
	retriever := usecase.NewRetriever(servingEmbedder, store, analyzer, filters, usecase.RetrievalConfig{}, logger)
	consolidator := usecase.NewContextConsolidator()
	assessor := usecase.NewConfidenceAssessor(analyzer)

	answerUC := usecase.NewAnswerUseCase(analyzer, retriever, consolidator, assessor, generator, logger)
	searchUC := usecase.NewSearchUseCase(retriever)
	ingestUC := usecase.NewIngestUseCase(repo, storage, queue, logger)

	chunker := chunking.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	extract := extractor.NewDispatcher(storage, logger)
	processUC := usecase.NewProcessUseCase(repo, extract, chunker, ingestEmbedder, store, logger)

	return &App{
		Config: cfg,
		Logger: logger,

		Queue: queue,
		Repo:  repo,

		AnswerUC:  answerUC,
		SearchUC:  searchUC,
		IngestUC:  ingestUC,
		ProcessUC: processUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
