package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/buildeval/assessment-rag/internal/core/domain"
	"github.com/buildeval/assessment-rag/internal/core/ports"
)

const defaultRetrievalLimit = 6

// AnswerUseCase orchestrates the full question-answering flow. It never
// returns an error: every failure path yields a well-formed answer object
// with an uncertain confidence level.
type AnswerUseCase struct {
	analyzer     *QueryAnalyzer
	retriever    *Retriever
	consolidator *ContextConsolidator
	assessor     *ConfidenceAssessor
	generator    ports.AnswerGenerator
	logger       *slog.Logger
}

func NewAnswerUseCase(
	analyzer *QueryAnalyzer,
	retriever *Retriever,
	consolidator *ContextConsolidator,
	assessor *ConfidenceAssessor,
	generator ports.AnswerGenerator,
	logger *slog.Logger,
) *AnswerUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnswerUseCase{
		analyzer:     analyzer,
		retriever:    retriever,
		consolidator: consolidator,
		assessor:     assessor,
		generator:    generator,
		logger:       logger,
	}
}

// AnswerQuestion runs intent detection, retrieval, consolidation, generation,
// confidence assessment and follow-up suggestion for one question.
func (u *AnswerUseCase) AnswerQuestion(ctx context.Context, req domain.QuestionRequest) *domain.RAGAnswer {
	start := time.Now()
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	intent := u.analyzer.DetectIntent(req.Question)
	u.logger.Info("processing question",
		"session_id", sessionID,
		"intent_type", intent.Type,
		"domain", intent.Domain,
		"complexity", intent.Complexity,
	)

	limit := req.MaxSources
	if limit <= 0 {
		limit = defaultRetrievalLimit
	}
	candidates := u.retriever.SemanticSearch(ctx, req.Question, limit)

	if len(candidates) == 0 {
		u.logger.Info("no relevant documents found", "session_id", sessionID)
		return &domain.RAGAnswer{
			Answer:     "I could not find relevant information in the documents to answer your question.",
			Sources:    []domain.Source{},
			Confidence: domain.ConfidenceUncertain,
			Metadata: domain.AnswerMetadata{
				ProcessingTime:  time.Since(start).Seconds(),
				SourcesCount:    0,
				Reasoning:       "No relevant documents found",
				ConfidenceLevel: domain.ConfidenceUncertain,
			},
			FollowUpQuestions: []domain.FollowUp{},
			SessionID:         sessionID,
		}
	}

	bundle := u.consolidator.Consolidate(candidates)
	u.logger.Info("context consolidated",
		"session_id", sessionID,
		"sources", bundle.Info.TotalSources,
		"context_length", bundle.Info.ContextLength,
	)

	sources := make([]domain.Source, 0, len(candidates))
	for _, cand := range candidates {
		sources = append(sources, domain.Source{
			Content:    cand.Content,
			FileName:   cand.FileName,
			SourceType: domain.DetectSourceType(cand.FileName),
			Score:      cand.EnhancedScore,
			Metadata:   cand.Metadata,
		})
	}

	prompt := buildPrompt(intent.Domain, bundle.ConsolidatedText, req.Question, u.logger)
	answer, err := u.generator.GenerateFromPrompt(ctx, prompt)
	if err != nil {
		u.logger.Error("answer generation failed", "session_id", sessionID, "error", err)
		return u.errorAnswer(sessionID, start, err)
	}

	confidence, reasoning := u.assessor.Assess(req.Question, answer, bundle.Info)
	followUps := generateFollowUps(intent, bundle.Info)

	elapsed := time.Since(start)
	u.logger.Info("answer generated",
		"session_id", sessionID,
		"confidence", confidence,
		"duration", elapsed,
	)

	info := bundle.Info
	return &domain.RAGAnswer{
		Answer:     answer,
		Sources:    sources,
		Confidence: confidence,
		Metadata: domain.AnswerMetadata{
			ProcessingTime:  elapsed.Seconds(),
			SourcesCount:    len(sources),
			Reasoning:       reasoning,
			QueryIntent:     &intent,
			ContextInfo:     &info,
			ConfidenceLevel: confidence,
		},
		FollowUpQuestions: followUps,
		SessionID:         sessionID,
	}
}

func (u *AnswerUseCase) errorAnswer(sessionID string, start time.Time, err error) *domain.RAGAnswer {
	return &domain.RAGAnswer{
		Answer:     "I encountered an error while processing your question. Please try again or contact support.",
		Sources:    []domain.Source{},
		Confidence: domain.ConfidenceUncertain,
		Metadata: domain.AnswerMetadata{
			ProcessingTime:  time.Since(start).Seconds(),
			SourcesCount:    0,
			Reasoning:       "Error: " + err.Error(),
			ConfidenceLevel: domain.ConfidenceUncertain,
		},
		FollowUpQuestions: []domain.FollowUp{},
		SessionID:         sessionID,
	}
}
