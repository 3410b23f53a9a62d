package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spacesedan/sentireport/internal/models"
	"gonum.org/v1/gonum/floats/scalar"
)

const REPORT_FILE_NAME = "sentiment_analysis_report.html"

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))

type CategoryRow struct {
	Name    string
	Count   string
	Percent string
}

type PostView struct {
	Text  string
	Score string
	Row   int
}

type ReportData struct {
	RunID        string
	Source       string
	GeneratedAt  string
	Total        string
	ChartFile    string
	Categories   []CategoryRow
	MostPositive PostView
	MostNegative PostView
}

// NewReportData projects a summary into the values the template prints.
func NewReportData(runID uuid.UUID, source string, generatedAt time.Time, summary models.SentimentSummary) ReportData {
	rows := make([]CategoryRow, 0, len(models.Categories()))
	for _, c := range models.Categories() {
		rows = append(rows, CategoryRow{
			Name:    c.String(),
			Count:   humanize.Comma(int64(summary.Counts[c])),
			Percent: humanize.FtoaWithDigits(summary.Share(c)*100, 1) + "%",
		})
	}

	return ReportData{
		RunID:        runID.String(),
		Source:       source,
		GeneratedAt:  generatedAt.Format(time.RFC1123),
		Total:        humanize.Comma(int64(summary.Total)),
		ChartFile:    CHART_FILE_NAME,
		Categories:   rows,
		MostPositive: newPostView(summary.MostPositive),
		MostNegative: newPostView(summary.MostNegative),
	}
}

func newPostView(sp models.ScoredPost) PostView {
	return PostView{
		Text:  sp.TextOrEmpty(),
		Score: strconv.FormatFloat(scalar.Round(sp.SentimentScore, 4), 'f', -1, 64),
		Row:   sp.Row,
	}
}

func RenderHTML(data ReportData) ([]byte, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("[Report] failed to render html: %w", err)
	}
	return buf.Bytes(), nil
}
