package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/drivefocus/internal/application"
	"github.com/bnema/drivefocus/internal/domain"
)

const windowBarWidth = 20

type RenderOptions struct {
	// EmergencyWindow scales the callback bars. Defaults to 60s.
	EmergencyWindow time.Duration
}

func (o RenderOptions) window() time.Duration {
	if o.EmergencyWindow <= 0 {
		return domain.DefaultEmergencyWindow
	}
	return o.EmergencyWindow
}

func renderState(status application.Status, s styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		s.title.Render("DriveFocus"),
		stateLine("monitoring", onOff(status.MonitoringEnabled), status.MonitoringEnabled, s),
		stateLine("driving", yesNo(status.Driving), status.Driving, s),
		handlerLine(status.DefaultHandler, s),
	)
}

func stateLine(label, value string, active bool, s styles) string {
	style := s.off
	if active {
		style = s.on
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, s.key.Render(label+":"), style.Render(value))
}

func handlerLine(granted bool, s styles) string {
	if granted {
		return lipgloss.JoinHorizontal(lipgloss.Top, s.key.Render("screening:"), s.on.Render("default handler"))
	}
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.key.Render("screening:"),
		s.warning.Render("not the default call screener"),
	)
}

func renderHistory(status application.Status, window time.Duration, s styles) string {
	parts := []string{s.header.Render(fmt.Sprintf("rejected callers: %d", len(status.History)))}
	if len(status.History) == 0 {
		parts = append(parts, s.empty.Render("No rejected calls."))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	for _, entry := range status.History {
		parts = append(parts, historyLine(entry, status.At, window, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func historyLine(entry application.HistoryEntry, now time.Time, window time.Duration, s styles) string {
	caller := s.caller.Render(entry.CallerID)
	when := s.meta.Render(fmt.Sprintf("rejected %s", formatRejectedAt(entry.RejectedAt, now)))

	if entry.WindowRemaining <= 0 {
		return lipgloss.JoinHorizontal(lipgloss.Top, caller, " ", when, " ", s.empty.Render("(callback window closed)"))
	}

	fraction := float64(entry.WindowRemaining) / float64(window)
	remainingStyle := lipgloss.NewStyle().Foreground(interpolateColor(fraction, 0, 1))
	remaining := remainingStyle.Render(fmt.Sprintf("%s left to call back", formatRemaining(entry.WindowRemaining)))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		caller,
		" ",
		when,
		" ",
		renderProgressBar(fraction, windowBarWidth, s),
		" ",
		remaining,
	)
}

func renderProgressBar(fraction float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clamp(fraction, 0, 1)))
	empty := width - filled

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", empty)),
		s.barBracket.Render("]"),
	)
}

func formatRejectedAt(at, now time.Time) string {
	if now.IsZero() {
		return at.Format(time.RFC3339)
	}

	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := at.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return at.Format("15:04:05")
	}

	return at.Format("15:04 on 02 Jan")
}

func formatRemaining(d time.Duration) string {
	seconds := int(math.Ceil(d.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	return fmt.Sprintf("%ds", seconds)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// interpolateColor maps value onto the 240..255 greyscale ramp.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := clamp((value-min)/(max-min), 0, 1)
	colorCode := int(240.0 + 15.0*normalized)

	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}
