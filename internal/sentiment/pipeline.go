package sentiment

import (
	"fmt"
	"math"

	"github.com/spacesedan/sentireport/internal/models"
	"gonum.org/v1/gonum/floats"
)

// TextScorer returns a deterministic compound polarity in [-1, 1].
type TextScorer interface {
	Score(text string) float64
}

type ScorerFunc func(text string) float64

func (f ScorerFunc) Score(text string) float64 {
	return f(text)
}

// Categorize maps a score to its category by sign alone; only exact zero is Neutral.
func Categorize(score float64) models.Category {
	switch {
	case score > 0:
		return models.Positive
	case score < 0:
		return models.Negative
	default:
		return models.Neutral
	}
}

func ScorePosts(scorer TextScorer, dataset models.Dataset) ([]models.ScoredPost, error) {
	scored := make([]models.ScoredPost, 0, len(dataset))

	for i, post := range dataset {
		if post.Text == nil {
			return nil, &MalformedInputError{Index: i, Row: post.Row}
		}

		score := clamp(scorer.Score(*post.Text))
		if math.IsNaN(score) {
			return nil, fmt.Errorf("%w: post %d (row %d)", ErrInvalidScore, i, post.Row)
		}
		scored = append(scored, models.ScoredPost{
			Post:              post,
			SentimentScore:    score,
			SentimentCategory: Categorize(score),
		})
	}

	return scored, nil
}

func Summarize(scored []models.ScoredPost) (models.SentimentSummary, error) {
	if len(scored) == 0 {
		return models.SentimentSummary{}, ErrArgmaxOnEmpty
	}

	counts := make(map[models.Category]int, 3)
	for _, c := range models.Categories() {
		counts[c] = 0
	}

	scores := make([]float64, len(scored))
	for i, sp := range scored {
		counts[sp.SentimentCategory]++
		scores[i] = sp.SentimentScore
	}

	// MaxIdx and MinIdx return the first index on ties.
	return models.SentimentSummary{
		Counts:       counts,
		Total:        len(scored),
		MostPositive: scored[floats.MaxIdx(scores)],
		MostNegative: scored[floats.MinIdx(scores)],
	}, nil
}

// Analyze scores every post and summarizes the result. Nothing is returned on error.
func Analyze(scorer TextScorer, dataset models.Dataset) ([]models.ScoredPost, models.SentimentSummary, error) {
	scored, err := ScorePosts(scorer, dataset)
	if err != nil {
		return nil, models.SentimentSummary{}, err
	}

	summary, err := Summarize(scored)
	if err != nil {
		return nil, models.SentimentSummary{}, err
	}

	return scored, summary, nil
}
