package simulator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/siamdeck/pokdeng-go/internal/statistics"
	"github.com/siamdeck/pokdeng-go/pokdeng"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#96CEB4"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	winStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4"))
	loseStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

func row(label, value string) string {
	return fmt.Sprintf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-18s", label)), value)
}

// Summary renders simulation results as a styled report.
func Summary(stats *statistics.Statistics) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Simulation results"))
	b.WriteString("\n\n")
	b.WriteString(row("Hands played", fmt.Sprintf("%d", stats.Hands)))
	b.WriteString("\n")

	low, high := stats.ConfidenceInterval95()
	b.WriteString(sectionStyle.Render("Net per hand (unit stake)"))
	b.WriteString("\n")
	b.WriteString(row("Mean", fmt.Sprintf("%+.4f", stats.Mean())))
	b.WriteString(row("Median", fmt.Sprintf("%+.4f", stats.Median())))
	b.WriteString(row("Std dev", fmt.Sprintf("%.4f", stats.StdDev())))
	b.WriteString(row("Std error", fmt.Sprintf("%.4f", stats.StdError())))
	b.WriteString(row("95% CI", fmt.Sprintf("[%+.4f, %+.4f]", low, high)))
	b.WriteString(row("Percentiles", fmt.Sprintf("P5=%+.2f P25=%+.2f P75=%+.2f P95=%+.2f",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))))
	b.WriteString(row("Best / worst", fmt.Sprintf("%s / %s",
		winStyle.Render(fmt.Sprintf("%+.1f", stats.MaxWin)),
		loseStyle.Render(fmt.Sprintf("%+.1f", stats.MaxLoss)))))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Outcomes"))
	b.WriteString("\n")
	b.WriteString(row("Win", fmt.Sprintf("%d (%.1f%%)", stats.Wins, stats.WinRate()*100)))
	b.WriteString(row("Lose", fmt.Sprintf("%d (%.1f%%)", stats.Losses, stats.LossRate()*100)))
	b.WriteString(row("Push", fmt.Sprintf("%d (%.1f%%)", stats.Pushes, stats.PushRate()*100)))
	b.WriteString(row("Player pok", fmt.Sprintf("%d (%.1f%%)", stats.PlayerPoks, stats.PlayerPokRate()*100)))
	b.WriteString(row("Dealer pok", fmt.Sprintf("%d (%.1f%%)", stats.DealerPoks, stats.DealerPokRate()*100)))
	b.WriteString(row("Drew third card", fmt.Sprintf("%d (%.1f%%)", stats.DrewHands, stats.DrawRate()*100)))
	if stats.Hands > 0 {
		b.WriteString(row("Net when drawing", fmt.Sprintf("%+.4f /hand", stats.DrewNet/float64(stats.Hands))))
		b.WriteString(row("Net when standing", fmt.Sprintf("%+.4f /hand", stats.StoodNet/float64(stats.Hands))))
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Winning multipliers"))
	b.WriteString("\n")
	dengs := make([]int, 0, len(stats.DengCounts))
	for deng := range stats.DengCounts {
		dengs = append(dengs, deng)
	}
	sort.Ints(dengs)
	for _, deng := range dengs {
		count := stats.DengCounts[deng]
		label := fmt.Sprintf("x%d", deng)
		if deng == 0 {
			label = "push"
		}
		b.WriteString(row(label, fmt.Sprintf("%d (%.1f%%)", count, float64(count)/float64(stats.Hands)*100)))
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Hand shapes"))
	b.WriteString("\n")
	for shape := pokdeng.None; shape <= pokdeng.StraightFlush; shape++ {
		ss := stats.SpecialResults[shape]
		if ss.Hands == 0 {
			continue
		}
		b.WriteString(row(shape.String(), fmt.Sprintf("%d (%.1f%%), %+.3f /hand",
			ss.Hands, float64(ss.Hands)/float64(stats.Hands)*100, stats.SpecialMean(shape))))
	}

	return b.String()
}

// OddsSummary renders hand equity results as a styled report.
func OddsSummary(result OddsResult) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Equity for %s", result.PlayerResult)))
	b.WriteString("\n\n")
	b.WriteString(row("Trials", fmt.Sprintf("%d", result.Trials)))
	b.WriteString(row("Win", winStyle.Render(fmt.Sprintf("%.1f%%", result.WinRate()*100))))
	b.WriteString(row("Lose", loseStyle.Render(fmt.Sprintf("%.1f%%", result.LossRate()*100))))
	b.WriteString(row("Push", fmt.Sprintf("%.1f%%", result.PushRate()*100)))
	b.WriteString(row("Mean net", fmt.Sprintf("%+.4f per unit staked", result.MeanNet())))

	return b.String()
}
