package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/spacesedan/sentireport/config"
	"github.com/spacesedan/sentireport/internal/loader"
	"github.com/spacesedan/sentireport/internal/models"
	"github.com/spacesedan/sentireport/internal/report"
	"github.com/spacesedan/sentireport/internal/sentiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type mockEmitter struct {
	inputs []report.Input
	err    error
}

func (m *mockEmitter) Emit(ctx context.Context, in report.Input) (report.Artifacts, error) {
	m.inputs = append(m.inputs, in)
	if m.err != nil {
		return report.Artifacts{}, m.err
	}
	return report.Artifacts{ChartPath: "chart.png", ReportPath: "report.html"}, nil
}

type mockOpener struct {
	opened []string
	err    error
}

func (m *mockOpener) Open(path string) error {
	m.opened = append(m.opened, path)
	return m.err
}

var fixedRunID = uuid.MustParse("0b7c1a34-5f2e-4d8a-9c61-2e4f7a9b3d10")

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "posts.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestDeps(emitter *mockEmitter, opener *mockOpener) Deps {
	return Deps{
		Scorer: sentiment.ScorerFunc(func(text string) float64 {
			switch text {
			case "good":
				return 0.5
			case "bad":
				return -0.5
			default:
				return 0
			}
		}),
		Emitter:  emitter,
		Opener:   opener,
		NewRunID: func() uuid.UUID { return fixedRunID },
	}
}

func settingsFor(path string) *config.Settings {
	return &config.Settings{InputPath: path, OutputDir: "unused", TextColumn: "tweet_text"}
}

// --- Tests ---

func TestRun_HappyPath(t *testing.T) {
	emitter := &mockEmitter{}
	opener := &mockOpener{}
	path := writeCSV(t, "tweet_text\ngood\nbad\nmeh\ngood\n")

	artifacts, err := Run(context.Background(), settingsFor(path), newTestDeps(emitter, opener))
	require.NoError(t, err)

	assert.Equal(t, "report.html", artifacts.ReportPath)
	require.Len(t, emitter.inputs, 1)
	in := emitter.inputs[0]
	assert.Equal(t, fixedRunID, in.RunID)
	assert.Equal(t, "posts.csv", in.Source)
	assert.Equal(t, 4, in.Summary.Total)
	assert.Equal(t, 2, in.Summary.Counts[models.Positive])
	assert.Equal(t, 1, in.Summary.Counts[models.Neutral])
	assert.Equal(t, 1, in.Summary.Counts[models.Negative])
	assert.Equal(t, 1, in.Summary.MostPositive.Row)
	assert.Equal(t, []string{"report.html"}, opener.opened)
}

func TestRun_LoadFailureEmitsNothing(t *testing.T) {
	emitter := &mockEmitter{}
	opener := &mockOpener{}

	_, err := Run(context.Background(), settingsFor(filepath.Join(t.TempDir(), "nope.csv")), newTestDeps(emitter, opener))
	assert.ErrorIs(t, err, loader.ErrFileNotFound)
	assert.Empty(t, emitter.inputs)
	assert.Empty(t, opener.opened)
}

func TestRun_MalformedInputEmitsNothing(t *testing.T) {
	emitter := &mockEmitter{}
	opener := &mockOpener{}
	path := writeCSV(t, "id,tweet_text\n1,good\n2\n")

	_, err := Run(context.Background(), settingsFor(path), newTestDeps(emitter, opener))
	assert.ErrorIs(t, err, sentiment.ErrMalformedInput)

	var malformed *sentiment.MalformedInputError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 2, malformed.Row)
	assert.Empty(t, emitter.inputs)
}

func TestRun_EmitFailureSkipsOpen(t *testing.T) {
	emitter := &mockEmitter{err: errors.New("disk full")}
	opener := &mockOpener{}
	path := writeCSV(t, "tweet_text\ngood\n")

	_, err := Run(context.Background(), settingsFor(path), newTestDeps(emitter, opener))
	assert.EqualError(t, err, "disk full")
	assert.Empty(t, opener.opened)
}

func TestRun_OpenFailureIsNotFatal(t *testing.T) {
	emitter := &mockEmitter{}
	opener := &mockOpener{err: errors.New("no browser")}
	path := writeCSV(t, "tweet_text\ngood\n")

	artifacts, err := Run(context.Background(), settingsFor(path), newTestDeps(emitter, opener))
	require.NoError(t, err)
	assert.Equal(t, "report.html", artifacts.ReportPath)
}

func TestRun_EndToEndWithVader(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	path := writeCSV(t, "tweet_text\nI love this!\nThis is terrible.\nIt is what it is.\n")
	s := &config.Settings{InputPath: path, OutputDir: out, TextColumn: "tweet_text", StripMarkdown: true}

	deps := NewDeps(s)
	opener := &mockOpener{}
	deps.Opener = opener

	artifacts, err := Run(context.Background(), s, deps)
	require.NoError(t, err)

	html, err := os.ReadFile(artifacts.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "I love this!")
	assert.Contains(t, string(html), "This is terrible.")
	assert.FileExists(t, artifacts.ChartPath)
	assert.Equal(t, []string{artifacts.ReportPath}, opener.opened)
}

func TestNewDeps_OpenerFollowsSettings(t *testing.T) {
	assert.IsType(t, report.BrowserOpener{}, NewDeps(&config.Settings{OpenReport: true}).Opener)
	assert.IsType(t, report.NoopOpener{}, NewDeps(&config.Settings{OpenReport: false}).Opener)
}

func TestRun_ControlCharactersAreScored(t *testing.T) {
	emitter := &mockEmitter{}
	path := writeCSV(t, "tweet_text\nI love this!\x00\nplain\x00\x01 words\n")
	s := &config.Settings{InputPath: path, OutputDir: "unused", TextColumn: "tweet_text", StripMarkdown: true}

	deps := NewDeps(s)
	deps.Emitter = emitter
	deps.Opener = &mockOpener{}

	_, err := Run(context.Background(), s, deps)
	require.NoError(t, err)

	require.Len(t, emitter.inputs, 1)
	summary := emitter.inputs[0].Summary
	assert.Equal(t, 2, summary.Total)
	assert.GreaterOrEqual(t, summary.MostPositive.SentimentScore, -1.0)
	assert.LessOrEqual(t, summary.MostPositive.SentimentScore, 1.0)
}

func TestRun_InvalidUTF8EmitsNothing(t *testing.T) {
	emitter := &mockEmitter{}
	path := writeCSV(t, "tweet_text\ngood\n\xc3\x28 bad\n")

	_, err := Run(context.Background(), settingsFor(path), newTestDeps(emitter, &mockOpener{}))
	assert.ErrorIs(t, err, loader.ErrParse)
	assert.Empty(t, emitter.inputs)
}
