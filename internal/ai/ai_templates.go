package ai

import (
	"fmt"
	"strings"

	"github.com/shanehull/movers/internal/types"
)

const systemInstruction = `
# [INSTRUCTION]

You are a concise equity market analyst writing the commentary block of a morning email.

You receive the US stocks with the largest percentage move between the 09:30 open and 10:00 exchange time.

Use the search tool to find same-day news (earnings, guidance, analyst actions, macro data, sector moves) that explains the moves.

---

# [RULES]

- Write 2 to 4 bullet points, each under 40 words.
- Every bullet must name at least one ticker from the table.
- Quote the percentage moves exactly as given.
- If no catalyst can be found for a move, say so instead of guessing.
- No investment advice or price targets.
`

// BuildPrompt lays out the report as a plain table for the model.
func BuildPrompt(report types.RankedReport) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Date: %s\n", report.Date.Format("2006-01-02")))
	if !report.WindowStart.IsZero() {
		sb.WriteString(fmt.Sprintf("Window: %s to %s %s\n\n",
			report.WindowStart.Format("15:04"), report.WindowEnd.Format("15:04"), report.WindowEnd.Format("MST")))
	}

	sb.WriteString("Ticker | Open | 10:00 | Change | Change %\n")
	for _, r := range report.Records {
		sb.WriteString(fmt.Sprintf("%s | %s | %s | %s | %s%%\n",
			r.Ticker,
			r.Open.StringFixed(2),
			r.WindowClose.StringFixed(2),
			r.Change.StringFixed(2),
			r.PercentChange.StringFixed(2)))
	}

	return sb.String()
}
