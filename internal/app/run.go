package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spacesedan/sentireport/config"
	"github.com/spacesedan/sentireport/internal/loader"
	"github.com/spacesedan/sentireport/internal/models"
	"github.com/spacesedan/sentireport/internal/report"
	"github.com/spacesedan/sentireport/internal/sentiment"
)

type ReportEmitter interface {
	Emit(ctx context.Context, in report.Input) (report.Artifacts, error)
}

type Deps struct {
	Scorer   sentiment.TextScorer
	Emitter  ReportEmitter
	Opener   report.Opener
	NewRunID func() uuid.UUID
}

// NewDeps builds the production collaborators for one run.
func NewDeps(s *config.Settings) Deps {
	var opener report.Opener = report.NoopOpener{}
	if s.OpenReport {
		opener = report.BrowserOpener{}
	}

	return Deps{
		Scorer:   sentiment.NewVaderScorer(sentiment.WithPlainText(s.StripMarkdown)),
		Emitter:  report.NewEmitter(s.OutputDir),
		Opener:   opener,
		NewRunID: uuid.New,
	}
}

// Run loads the dataset, analyzes it and writes the report. Every failure is
// logged once and returned; nothing is written unless analysis succeeded.
func Run(ctx context.Context, s *config.Settings, deps Deps) (report.Artifacts, error) {
	runID := deps.NewRunID()
	log := slog.With(slog.String("run_id", runID.String()))

	ds, err := loader.LoadCSV(s.InputPath, loader.Options{TextColumn: s.TextColumn})
	if err != nil {
		log.Error("[App] Failed to load posts", slog.String("error", err.Error()))
		return report.Artifacts{}, err
	}

	_, summary, err := sentiment.Analyze(deps.Scorer, ds)
	if err != nil {
		log.Error("[App] Sentiment analysis failed", slog.String("error", err.Error()))
		return report.Artifacts{}, fmt.Errorf("[App] analyze %s: %w", s.InputPath, err)
	}
	logSummary(log, summary)

	artifacts, err := deps.Emitter.Emit(ctx, report.Input{
		RunID:   runID,
		Source:  filepath.Base(s.InputPath),
		Summary: summary,
	})
	if err != nil {
		log.Error("[App] Failed to write report", slog.String("error", err.Error()))
		return report.Artifacts{}, err
	}

	if err := deps.Opener.Open(artifacts.ReportPath); err != nil {
		log.Warn("[App] Report written but could not be opened",
			slog.String("path", artifacts.ReportPath),
			slog.String("error", err.Error()))
	}

	return artifacts, nil
}

func logSummary(log *slog.Logger, summary models.SentimentSummary) {
	attrs := make([]any, 0, len(summary.Counts)+1)
	attrs = append(attrs, slog.Int("total", summary.Total))
	for _, c := range models.Categories() {
		attrs = append(attrs, slog.Int(c.String(), summary.Counts[c]))
	}
	log.Info("[App] Sentiment counts", attrs...)
}
