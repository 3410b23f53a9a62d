package models

import "fmt"

type Category int

const (
	Neutral Category = iota
	Positive
	Negative
)

// Categories returns every category in report order.
func Categories() []Category {
	return []Category{Positive, Neutral, Negative}
}

func (c Category) String() string {
	switch c {
	case Positive:
		return "Positive"
	case Neutral:
		return "Neutral"
	case Negative:
		return "Negative"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type ScoredPost struct {
	Post
	SentimentScore    float64  `json:"sentiment_score"`
	SentimentCategory Category `json:"sentiment_category"`
}

type SentimentSummary struct {
	Counts       map[Category]int `json:"counts"`
	Total        int              `json:"total"`
	MostPositive ScoredPost       `json:"most_positive"`
	MostNegative ScoredPost       `json:"most_negative"`
}

// Share returns the fraction of posts in c, or 0 for an empty summary.
func (s SentimentSummary) Share(c Category) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Counts[c]) / float64(s.Total)
}
