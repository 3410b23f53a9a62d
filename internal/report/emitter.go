package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/spacesedan/sentireport/internal/models"
)

type Artifacts struct {
	ChartPath  string
	ReportPath string
}

type Input struct {
	RunID   uuid.UUID
	Source  string
	Summary models.SentimentSummary
}

type EmitterOption func(*Emitter)

func WithClock(clock clockwork.Clock) EmitterOption {
	return func(e *Emitter) {
		e.clock = clock
	}
}

func WithChartOptions(opts ChartOptions) EmitterOption {
	return func(e *Emitter) {
		e.chart = opts
	}
}

// Emitter renders a summary and writes the chart and report into one directory.
type Emitter struct {
	dir   string
	clock clockwork.Clock
	chart ChartOptions
}

func NewEmitter(dir string, opts ...EmitterOption) *Emitter {
	e := &Emitter{
		dir:   dir,
		clock: clockwork.NewRealClock(),
		chart: DefaultChartOptions(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit renders both artifacts before touching the disk, so a rendering
// failure leaves the output directory untouched.
func (e *Emitter) Emit(ctx context.Context, in Input) (Artifacts, error) {
	chart, err := RenderChart(in.Summary.Counts, e.chart)
	if err != nil {
		return Artifacts{}, err
	}

	html, err := RenderHTML(NewReportData(in.RunID, in.Source, e.clock.Now(), in.Summary))
	if err != nil {
		return Artifacts{}, err
	}

	if err := ctx.Err(); err != nil {
		return Artifacts{}, fmt.Errorf("[Report] emit canceled: %w", err)
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return Artifacts{}, fmt.Errorf("[Report] failed to create output folder: %w", err)
	}

	artifacts := Artifacts{
		ChartPath:  filepath.Join(e.dir, CHART_FILE_NAME),
		ReportPath: filepath.Join(e.dir, REPORT_FILE_NAME),
	}

	// Stage both files before replacing either, so a failed write never
	// leaves a report pointing at a missing chart.
	chartTmp, err := stageFile(artifacts.ChartPath, chart)
	if err != nil {
		return Artifacts{}, err
	}
	defer os.Remove(chartTmp)

	reportTmp, err := stageFile(artifacts.ReportPath, html)
	if err != nil {
		return Artifacts{}, err
	}
	defer os.Remove(reportTmp)

	if err := os.Rename(chartTmp, artifacts.ChartPath); err != nil {
		return Artifacts{}, fmt.Errorf("[Report] failed to move %s into place: %w", artifacts.ChartPath, err)
	}
	if err := os.Rename(reportTmp, artifacts.ReportPath); err != nil {
		return Artifacts{}, fmt.Errorf("[Report] failed to move %s into place: %w", artifacts.ReportPath, err)
	}

	slog.Info("[Report] Report written",
		slog.String("run_id", in.RunID.String()),
		slog.String("chart", artifacts.ChartPath),
		slog.String("report", artifacts.ReportPath))

	return artifacts, nil
}

// stageFile writes data to a temp file next to path and returns its name.
func stageFile(path string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", fmt.Errorf("[Report] failed to create temp file for %s: %w", path, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("[Report] failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("[Report] failed to close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("[Report] failed to chmod %s: %w", path, err)
	}

	return tmp.Name(), nil
}
