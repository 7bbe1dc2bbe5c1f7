package tui

import (
	"strings"

	"github.com/aretw0/tripwizard/pkg/domain"
	"github.com/muesli/termenv"
)

var tagColors = map[domain.VisualTag]string{
	domain.TagPrimary:   "#818cf8",
	domain.TagSecondary: "#f472b6",
	domain.TagAccent:    "#fbbf24",
}

var stepIcons = []string{"✈", "⌖", "▦", "♥"}

// StepLine renders the preloader for one animator state: the current step label
// in its tag color followed by a progress row. It returns an empty string once
// the animator faded out.
func StepLine(p termenv.Profile, steps []domain.Step, st domain.AnimatorState) string {
	if !st.Visible || st.CurrentStep < 0 || st.CurrentStep >= len(steps) {
		return ""
	}
	step := steps[st.CurrentStep]
	color := tagColors[step.Tag]
	if color == "" {
		color = tagColors[domain.TagPrimary]
	}

	var sb strings.Builder
	icon := stepIcons[st.CurrentStep%len(stepIcons)]
	sb.WriteString(termenv.String(icon + " " + step.Label).Foreground(p.Color(color)).Bold().String())
	sb.WriteString("  ")
	for i := range steps {
		dot := "○"
		if i <= st.CurrentStep {
			dot = "●"
		}
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(dot)
	}
	return sb.String()
}
