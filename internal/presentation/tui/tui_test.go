package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/tripwizard/internal/presentation/tui"
	"github.com/aretw0/tripwizard/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepLine(t *testing.T) {
	steps := domain.DefaultSteps()

	got := tui.StepLine(termenv.Ascii, steps, domain.AnimatorState{CurrentStep: 0, Visible: true})
	assert.Equal(t, "✈ Discovering destinations  ● ○ ○ ○", got)

	got = tui.StepLine(termenv.Ascii, steps, domain.AnimatorState{CurrentStep: 3, Visible: true})
	assert.Equal(t, "♥ Creating memories  ● ● ● ●", got)

	assert.Empty(t, tui.StepLine(termenv.Ascii, steps, domain.AnimatorState{CurrentStep: 3, Visible: false}))
	assert.Empty(t, tui.StepLine(termenv.Ascii, steps, domain.AnimatorState{CurrentStep: 9, Visible: true}))
}

func TestStepLine_Colored(t *testing.T) {
	got := tui.StepLine(termenv.TrueColor, domain.DefaultSteps(), domain.AnimatorState{CurrentStep: 1, Visible: true})
	assert.Contains(t, got, "Finding perfect locations")
	assert.Contains(t, got, "\x1b[", "expected ANSI escape sequences")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, termenv.Ascii)
	out := buf.String()
	assert.NotContains(t, out, "\x1b[")
	assert.Equal(t, 8, strings.Count(out, "\n"))
}

func TestNewRenderer_Plain(t *testing.T) {
	render := tui.NewRenderer(true, 80)
	out, err := render("# Paris\n")
	require.NoError(t, err)
	assert.Equal(t, "# Paris\n", out)
}

func TestNewRenderer_Glamour(t *testing.T) {
	render := tui.NewRenderer(false, 80)
	out, err := render("# Paris\n\nDay one.")
	require.NoError(t, err)
	assert.Contains(t, out, "Paris")
	assert.Contains(t, out, "Day one.")
}
