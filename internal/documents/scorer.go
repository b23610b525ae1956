package documents

import (
	"context"
	"errors"
	"fmt"
	"math"

	"admission-workers/internal/common/logger"
	"admission-workers/internal/common/metrics"
)

// NeutralScore stands in for a missing or unreadable document.
const NeutralScore = 0.5

const (
	weightLength      = 0.30
	weightCoherence   = 0.35
	weightReadability = 0.20
	weightLexical     = 0.15
)

type Result struct {
	Score    float64                `json:"score"`
	Details  map[string]interface{} `json:"details"`
	Fallback bool                   `json:"fallback,omitempty"`
}

type Scorer struct {
	embedder Embedder
	fallback Embedder
	maxBytes int
	logger   logger.Logger
}

// NewScorer uses bag-of-words vectors when embedder is nil. If a configured
// embedder fails, coherence is recomputed with bag-of-words instead.
func NewScorer(embedder Embedder, maxBytes int, log logger.Logger) *Scorer {
	if embedder == nil {
		embedder = BagOfWordsEmbedder{}
	}
	return &Scorer{
		embedder: embedder,
		fallback: BagOfWordsEmbedder{},
		maxBytes: maxBytes,
		logger:   log,
	}
}

func (s *Scorer) Score(ctx context.Context, data []byte, filename string, kind Kind) (Result, error) {
	if s.maxBytes > 0 && len(data) > s.maxBytes {
		return Result{}, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}

	text, err := ExtractText(data, filename)
	if err != nil {
		return Result{}, err
	}
	if text == "" {
		return Result{}, ErrEmptyDocument
	}

	kind = DetectKind(text, kind)
	wordCount := len(words(text))

	lenScore := lengthScore(wordCount, kind)
	coh, err := coherence(ctx, s.embedder, text)
	if err != nil {
		s.logger.Warn("embedding failed, using bag-of-words coherence", map[string]interface{}{
			"error": err.Error(),
		})
		coh, _ = coherence(ctx, s.fallback, text)
	}
	read := readabilityScore(text)
	lex := lexicalDiversity(text)

	boost := 0.0
	if kind == KindLOR {
		boost = phraseBoost(text)
	}

	score := weightLength*lenScore + weightCoherence*coh + weightReadability*read + weightLexical*lex + boost
	score = math.Max(0, math.Min(1, score))

	return Result{
		Score: round3(score),
		Details: map[string]interface{}{
			"kind":              string(kind),
			"words":             wordCount,
			"len":               round3(lenScore),
			"coherence":         round3(coh),
			"readability":       round3(read),
			"lexical_diversity": round3(lex),
			"phrase_boost":      round3(boost),
		},
	}, nil
}

// ScoreOrDefault never fails: any error yields the neutral score with empty
// details.
func (s *Scorer) ScoreOrDefault(ctx context.Context, data []byte, filename string, kind Kind) Result {
	res, err := s.Score(ctx, data, filename, kind)
	if err == nil {
		return res
	}

	reason := fallbackReason(err)
	metrics.DocumentScoreFallbacks.WithLabelValues(reason).Inc()
	s.logger.Warn("document scoring failed, using neutral score", map[string]interface{}{
		"filename": filename,
		"reason":   reason,
		"error":    err.Error(),
	})
	return Neutral()
}

func Neutral() Result {
	return Result{Score: NeutralScore, Details: map[string]interface{}{}, Fallback: true}
}

func fallbackReason(err error) string {
	switch {
	case errors.Is(err, ErrEmptyDocument):
		return "empty"
	case errors.Is(err, ErrTooLarge):
		return "too_large"
	case errors.Is(err, ErrUnreadable):
		return "unreadable"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "error"
	}
}
