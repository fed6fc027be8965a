package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shuv1824/packlist/internal/outfit"
	"github.com/shuv1824/packlist/internal/types"
)

const nothingSpecial = "nothing special"

// RenderPlan formats a plan for the terminal.
func RenderPlan(plan types.Plan) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("Packing list for %s: %s, %d day(s)",
		plan.Name, plan.Destination, plan.Duration)))
	b.WriteString("\n")

	b.WriteString(HeadingStyle.Render("Forecast"))
	b.WriteString("\n")
	for _, day := range plan.Forecast {
		fmt.Fprintf(&b, "  %s  %4d°F to %4d°F  %s\n", day.Date, day.MinTemp, day.MaxTemp, day.Condition)
	}
	b.WriteString("\n")

	b.WriteString(RenderRecommendation(plan.Recommendation))
	if plan.Recommendation.Empty() && len(plan.Forecast) > 0 {
		b.WriteString(SubtleStyle.Render("No rule matched this forecast. Load wider tables with --rules."))
		b.WriteString("\n")
	}

	if plan.ID != "" {
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render("plan " + plan.ID))
	}

	return b.String()
}

// RenderRecommendation formats the two item lists side by side.
func RenderRecommendation(rec outfit.Recommendation) string {
	clothing := BoxStyle.Render(HeadingStyle.Render("Clothing") + "\n" + itemList(rec.Clothing))
	accessories := BoxStyle.Render(HeadingStyle.Render("Accessories") + "\n" + itemList(rec.Accessories))

	return lipgloss.JoinHorizontal(lipgloss.Top, clothing, " ", accessories) + "\n"
}

// RenderTables lists the active rule tables.
func RenderTables(t outfit.Tables) string {
	var b strings.Builder

	b.WriteString(HeadingStyle.Render("Clothing bands"))
	b.WriteString("\n")
	for _, r := range t.Clothing {
		fmt.Fprintf(&b, "  %4d°F .. %4d°F  %s\n", r.MinTemp, r.MaxTemp, strings.Join(r.Items, ", "))
	}
	if len(t.Clothing) == 0 {
		b.WriteString(SubtleStyle.Render("  none") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(HeadingStyle.Render("Accessories by condition"))
	b.WriteString("\n")
	for _, r := range t.Accessories {
		fmt.Fprintf(&b, "  %-8s  %s\n", r.Condition, strings.Join(r.Items, ", "))
	}
	if len(t.Accessories) == 0 {
		b.WriteString(SubtleStyle.Render("  none") + "\n")
	}

	return b.String()
}

// RenderSummaries formats the saved-plan listing.
func RenderSummaries(plans []types.PlanSummary) string {
	if len(plans) == 0 {
		return SubtleStyle.Render("No saved plans yet.") + "\n"
	}

	var b strings.Builder
	for _, p := range plans {
		fmt.Fprintf(&b, "%s  %-20s %-12s %2d day(s)  %s\n",
			p.CreatedAt.Local().Format("2006-01-02 15:04"), p.Destination, p.Name, p.Duration, SubtleStyle.Render(p.ID))
	}
	return b.String()
}

func itemList(items outfit.ItemSet) string {
	if items.Len() == 0 {
		return SubtleStyle.Render(nothingSpecial)
	}

	lines := make([]string, 0, items.Len())
	for _, item := range items.Sorted() {
		lines = append(lines, "• "+item)
	}
	return strings.Join(lines, "\n")
}
