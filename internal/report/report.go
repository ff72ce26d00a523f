package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Krzysztof-Ad/Financial-News-Sentiment-Analyzer/internal/models"
)

const (
	colorPositive = "#04B575"
	colorNegative = "#FF5F56"
	colorNeutral  = "#626262"
	colorBorder   = "#874BFD"
	colorHeader   = "#7D56F4"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorHeader))

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorBorder))

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(0, 2)

	labelStyles = map[string]lipgloss.Style{
		models.Positive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorPositive)),
		models.Negative: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorNegative)),
		models.Neutral:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorNeutral)),
	}
)

// Render formats a complete run result for the console: a table of the
// topN most recent scored articles followed by the verdict banner.
// Pure string building; the caller decides where it goes.
func Render(r *models.Report, topN int) string {
	var b strings.Builder
	b.WriteString(ArticleTable(r.Articles, topN))
	b.WriteString("\n")
	b.WriteString(VerdictBanner(r.Verdict))
	b.WriteString("\n")
	return b.String()
}

// ArticleTable renders the topN scored articles as a bordered table.
func ArticleTable(articles []models.ScoredArticle, topN int) string {
	if topN <= 0 || topN > len(articles) {
		topN = len(articles)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("DATE", "TITLE", "SCORE")

	for _, a := range articles[:topN] {
		date := ""
		if !a.PublishedAt.IsZero() {
			date = a.PublishedAt.Format("2006-01-02 15:04")
		}
		t.Row(date, truncate(a.Title, 60), fmt.Sprintf("%+.4f", a.Compound))
	}

	return t.String()
}

// VerdictBanner renders the aggregate verdict summary.
func VerdictBanner(v models.Verdict) string {
	label, ok := labelStyles[v.Interpretation]
	if !ok {
		label = labelStyles[models.Neutral]
	}

	lines := []string{
		headerStyle.Render("SENTIMENT VERDICT"),
		fmt.Sprintf("Company:            %s", v.Company),
		fmt.Sprintf("Time horizon days:  %d", v.HorizonDays),
		fmt.Sprintf("Articles analyzed:  %d", v.ArticleCount),
		fmt.Sprintf("Sentiment score:    %.4f", v.MeanScore),
		fmt.Sprintf("Interpretation:     %s", label.Render(v.Interpretation)),
	}

	return bannerStyle.Render(strings.Join(lines, "\n"))
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
