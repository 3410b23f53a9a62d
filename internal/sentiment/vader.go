package sentiment

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`</?[A-Za-z][A-Za-z0-9-]*(\s[^<>]*)?/?>`)
)

// Polarity is the full VADER breakdown for one text.
type Polarity struct {
	Positive float64 `json:"pos"`
	Neutral  float64 `json:"neu"`
	Negative float64 `json:"neg"`
	Compound float64 `json:"compound"`
}

type VaderOption func(*VaderScorer)

// WithPlainText toggles markdown and link stripping before scoring.
func WithPlainText(enabled bool) VaderOption {
	return func(v *VaderScorer) {
		v.plainText = enabled
	}
}

// VaderScorer scores text with the VADER lexicon and returns the compound polarity.
type VaderScorer struct {
	analyzer  *govader.SentimentIntensityAnalyzer
	plainText bool
}

func NewVaderScorer(opts ...VaderOption) *VaderScorer {
	v := &VaderScorer{
		analyzer:  govader.NewSentimentIntensityAnalyzer(),
		plainText: true,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *VaderScorer) Score(text string) float64 {
	return v.Polarity(text).Compound
}

func (v *VaderScorer) Polarity(text string) Polarity {
	if v.plainText {
		text = ConvertMarkdownToText(text)
	}

	s := v.analyzer.PolarityScores(text)
	return Polarity{
		Positive: s.Positive,
		Neutral:  s.Neutral,
		Negative: s.Negative,
		Compound: clamp(s.Compound),
	}
}

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	input = urlPattern.ReplaceAllString(input, "")

	return strings.Join(strings.Fields(input), " ")
}

// ConvertMarkdownToText keeps only the text nodes of a markdown document,
// so link labels survive and markup, code fences and images do not.
// Angle brackets that are not part of an HTML tag are text: emoticons such
// as <3 and >:( reach the analyzer unchanged.
func ConvertMarkdownToText(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}

	root := blackfriday.New(blackfriday.WithNoExtensions()).Parse([]byte(escapeStrayAngles(input)))

	var b strings.Builder
	root.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		switch node.Type {
		case blackfriday.Text, blackfriday.Code:
			if entering {
				b.Write(node.Literal)
			}
		case blackfriday.HTMLSpan:
			if !tagPattern.Match(node.Literal) {
				b.Write(node.Literal)
			}
		case blackfriday.Image:
			return blackfriday.SkipChildren
		case blackfriday.CodeBlock:
			b.Write(node.Literal)
			b.WriteByte(' ')
		case blackfriday.Softbreak, blackfriday.Hardbreak:
			b.WriteByte(' ')
		case blackfriday.Paragraph, blackfriday.Heading, blackfriday.Item:
			if !entering {
				b.WriteByte(' ')
			}
		}
		return blackfriday.GoToNext
	})

	return RemoveLinks(b.String())
}

// escapeStrayAngles backslash-escapes every < and > outside an HTML tag.
func escapeStrayAngles(input string) string {
	if !strings.ContainsAny(input, "<>") {
		return input
	}

	var b strings.Builder
	last := 0
	for _, loc := range tagPattern.FindAllStringIndex(input, -1) {
		writeEscaped(&b, input[last:loc[0]])
		b.WriteString(input[loc[0]:loc[1]])
		last = loc[1]
	}
	writeEscaped(&b, input[last:])

	return b.String()
}

func writeEscaped(b *strings.Builder, s string) {
	for _, r := range s {
		if r == '<' || r == '>' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
}

// clamp bounds a score to [-1, 1]. NaN is passed through; ScorePosts rejects it.
func clamp(score float64) float64 {
	return math.Max(-1, math.Min(1, score))
}
