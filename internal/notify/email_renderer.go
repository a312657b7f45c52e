package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shanehull/movers/internal/ai"
	"github.com/shanehull/movers/internal/types"
)

// ReportData is everything the email needs to describe one run.
type ReportData struct {
	Report      types.RankedReport
	GeneratedAt time.Time
	Commentary  *ai.Commentary
}

// RenderedMessage is a ready-to-send email.
type RenderedMessage struct {
	Subject string
	Text    string
	HTML    string
}

type reportRow struct {
	Ticker        string
	Open          string
	WindowClose   string
	Change        string
	PercentChange string
	Class         string
}

type templateData struct {
	Title      string
	Date       string
	Window     string
	Rows       []reportRow
	Commentary *ai.Commentary
}

// HTMLEmailRenderer renders the movers report as an HTML email with a plain text fallback.
type HTMLEmailRenderer struct {
	tmpl *template.Template
}

// NewHTMLEmailRenderer creates a renderer with the default email template.
func NewHTMLEmailRenderer() *HTMLEmailRenderer {
	t := template.Must(template.New("email").Parse(emailHTMLTemplate))
	return &HTMLEmailRenderer{tmpl: t}
}

// Render produces an HTML email with plain text alternative.
func (r *HTMLEmailRenderer) Render(data ReportData) (*RenderedMessage, error) {
	td := templateData{
		Title:      fmt.Sprintf("Top %d Stock Movers", len(data.Report.Records)),
		Date:       data.GeneratedAt.Format("January 02, 2006"),
		Window:     windowLabel(data.Report),
		Rows:       buildRows(data.Report.Records),
		Commentary: data.Commentary,
	}

	var htmlBuf bytes.Buffer
	if err := r.tmpl.Execute(&htmlBuf, td); err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}

	return &RenderedMessage{
		Subject: Subject(data),
		Text:    renderPlainText(td),
		HTML:    htmlBuf.String(),
	}, nil
}

// Subject carries the report generation date, which can differ from the data date.
func Subject(data ReportData) string {
	return fmt.Sprintf("Top %d Stock Movers - %s", len(data.Report.Records), data.GeneratedAt.Format("2006-01-02"))
}

func windowLabel(report types.RankedReport) string {
	if report.WindowStart.IsZero() {
		return "Market Open to 10:00 AM"
	}
	return fmt.Sprintf("Market Open to 10:00 AM %s (%s to %s)",
		report.WindowEnd.Format("MST"),
		report.WindowStart.Format("15:04"),
		report.WindowEnd.Format("15:04"))
}

func buildRows(records []types.ChangeRecord) []reportRow {
	rows := make([]reportRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, reportRow{
			Ticker:        rec.Ticker,
			Open:          formatMoney(rec.Open),
			WindowClose:   formatMoney(rec.WindowClose),
			Change:        formatMoney(rec.Change),
			PercentChange: formatPercent(rec.PercentChange),
			Class:         changeClass(rec.PercentChange),
		})
	}
	return rows
}

func formatMoney(d decimal.Decimal) string {
	r := d.Round(2)
	if r.IsNegative() {
		return "-$" + r.Abs().StringFixed(2)
	}
	return "$" + r.StringFixed(2)
}

func formatPercent(d decimal.Decimal) string {
	r := d.Round(2)
	if r.IsPositive() {
		return "+" + r.StringFixed(2) + "%"
	}
	return r.StringFixed(2) + "%"
}

func changeClass(pct decimal.Decimal) string {
	switch pct.Sign() {
	case 1:
		return "positive"
	case -1:
		return "negative"
	default:
		return "flat"
	}
}

// renderPlainText produces a readable plain text version for email clients that don't support HTML.
func renderPlainText(td templateData) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s (%s)\n", td.Title, td.Window))
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")
	sb.WriteString(fmt.Sprintf("Date: %s\n\n", td.Date))

	writeTable(&sb, td.Rows)
	sb.WriteString("\n")

	if td.Commentary != nil && len(td.Commentary.Summary) > 0 {
		sb.WriteString("AI COMMENTARY\n")
		sb.WriteString(strings.Repeat("-", 20) + "\n")
		for _, s := range td.Commentary.Summary {
			sb.WriteString(fmt.Sprintf("• %s\n", s))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeTable(sb *strings.Builder, rows []reportRow) {
	tw := tabwriter.NewWriter(sb, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Ticker\tOpen Price\t10 AM Price\tChange ($)\tChange (%)\t")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", row.Ticker, row.Open, row.WindowClose, row.Change, row.PercentChange)
	}
	tw.Flush()
}
