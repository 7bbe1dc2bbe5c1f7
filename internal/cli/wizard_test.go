package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/tripwizard/internal/cli"
	"github.com/aretw0/tripwizard/internal/runtime"
	"github.com/aretw0/tripwizard/pkg/adapters/mock"
	"github.com/aretw0/tripwizard/pkg/adapters/timer"
	"github.com/aretw0/tripwizard/pkg/domain"
	"github.com/aretw0/tripwizard/pkg/ports"
	"github.com/aretw0/tripwizard/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = domain.MustParseDate("2025-05-18")

// scriptedPrompter answers prompts from fixed queues. An empty input, or a
// negative select index, accepts the prompt default.
type scriptedPrompter struct {
	mu       sync.Mutex
	inputs   []string
	selects  []int
	multis   [][]int
	confirms []bool
	asked    []string
	defaults map[string]string
}

func (p *scriptedPrompter) record(msg, def string) {
	p.asked = append(p.asked, msg)
	if p.defaults == nil {
		p.defaults = make(map[string]string)
	}
	p.defaults[msg] = def
}

func (p *scriptedPrompter) Input(_ context.Context, cfg cli.InputConfig) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record(cfg.Message, cfg.Default)
	if len(p.inputs) == 0 {
		return "", cli.ErrAborted
	}
	ans := p.inputs[0]
	p.inputs = p.inputs[1:]
	if ans == "" {
		ans = cfg.Default
	}
	return ans, nil
}

func (p *scriptedPrompter) Select(_ context.Context, cfg cli.SelectConfig) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	def := ""
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		def = cfg.Options[cfg.DefaultIndex]
	}
	p.record(cfg.Message, def)
	if len(p.selects) == 0 {
		return 0, cli.ErrAborted
	}
	ans := p.selects[0]
	p.selects = p.selects[1:]
	if ans < 0 {
		ans = cfg.DefaultIndex
	}
	return ans, nil
}

func (p *scriptedPrompter) MultiSelect(_ context.Context, cfg cli.SelectConfig) ([]int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var defs []string
	for _, i := range cfg.Defaults {
		defs = append(defs, cfg.Options[i])
	}
	p.record(cfg.Message, strings.Join(defs, ","))
	if len(p.multis) == 0 {
		return nil, cli.ErrAborted
	}
	ans := p.multis[0]
	p.multis = p.multis[1:]
	if ans == nil {
		ans = cfg.Defaults
	}
	return ans, nil
}

func (p *scriptedPrompter) Confirm(_ context.Context, cfg cli.ConfirmConfig) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record(cfg.Message, "")
	if len(p.confirms) == 0 {
		return false, cli.ErrAborted
	}
	ans := p.confirms[0]
	p.confirms = p.confirms[1:]
	return ans, nil
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newController(t *testing.T, gen ports.ItineraryGenerator) (*runtime.Controller, *timer.Manual) {
	t.Helper()
	sched := timer.NewManual(time.Date(2025, 5, 18, 9, 0, 0, 0, time.UTC))
	ctrl, err := runtime.NewController(gen, runtime.WithSessionID("cli"), runtime.WithScheduler(sched))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctrl.Close() })
	return ctrl, sched
}

func parisScript() *scriptedPrompter {
	return &scriptedPrompter{
		inputs:  []string{"Paris", "2025-06-01", "2025-06-07"},
		selects: []int{1, 1},
		multis:  [][]int{{1}},
	}
}

func TestAskTrip(t *testing.T) {
	p := parisScript()
	req, err := cli.AskTrip(context.Background(), p, nil, today)
	require.NoError(t, err)
	assert.Equal(t, tests.SampleRequest(), req)

	assert.Equal(t, "2025-06-01", p.defaults["Start date (YYYY-MM-DD):"], "start defaults to two weeks out")
	assert.Equal(t, "2025-06-07", p.defaults["End date (YYYY-MM-DD):"], "end defaults to a week-long trip")
	assert.Equal(t, "2", p.defaults["Travelers:"])
}

func TestAskTrip_Prefill(t *testing.T) {
	prev := tests.SampleRequest()
	prev.Destination = "Lisbon"
	prev.Budget = domain.BudgetHigh
	prev.Travelers = "5+"
	prev.Interests = []string{"history", "nature"}

	p := &scriptedPrompter{
		inputs:  []string{"", "", ""},
		selects: []int{-1, -1},
		multis:  [][]int{nil},
	}
	req, err := cli.AskTrip(context.Background(), p, &prev, today)
	require.NoError(t, err)
	assert.Equal(t, prev, req)
	assert.Equal(t, "history,nature", p.defaults["Interests:"])
}

func TestAskTrip_RejectsBadDates(t *testing.T) {
	p := parisScript()
	p.inputs = []string{"Paris", "2025-06-07", "2025-06-01"}
	_, err := cli.AskTrip(context.Background(), p, nil, today)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	p = parisScript()
	p.inputs = []string{"Paris", "June 1st", "2025-06-07"}
	_, err = cli.AskTrip(context.Background(), p, nil, today)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestAskTrip_Aborted(t *testing.T) {
	_, err := cli.AskTrip(context.Background(), &scriptedPrompter{}, nil, today)
	assert.ErrorIs(t, err, cli.ErrAborted)
}

func TestWizard_EditLoop(t *testing.T) {
	ctrl, sched := newController(t, mock.New(mock.WithDelay(0)))
	require.NoError(t, ctrl.Start(context.Background()))
	sched.Advance(5 * time.Second)

	p := parisScript()
	// Second pass accepts the prefilled form.
	p.inputs = append(p.inputs, "", "", "")
	p.selects = append(p.selects, -1, -1)
	p.multis = append(p.multis, nil)
	p.confirms = []bool{true, false}

	out := &syncBuffer{}
	export := filepath.Join(t.TempDir(), "paris.md")
	wiz := cli.NewWizard(ctrl, p,
		cli.WithOutput(out, false),
		cli.WithExportPath(export),
		cli.WithToday(func() domain.Date { return today }),
	)

	require.NoError(t, wiz.Run(context.Background()))
	assert.Equal(t, domain.ScreenReviewing, ctrl.Screen())
	assert.Equal(t, "Paris", p.defaults["Where do you want to go?"], "edit prefills the form")
	assert.Equal(t, 2, strings.Count(out.String(), "# Trip to Paris"))

	data, err := os.ReadFile(export)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Trip to Paris"))
}

func TestWizard_RendersPreloader(t *testing.T) {
	ctrl, sched := newController(t, mock.New(mock.WithDelay(0)))
	out := &syncBuffer{}
	wiz := cli.NewWizard(ctrl, &scriptedPrompter{}, cli.WithOutput(out, false))

	errc := make(chan error, 1)
	go func() { errc <- wiz.Run(context.Background()) }()

	for i, step := range domain.DefaultSteps() {
		label := step.Label
		require.Eventually(t, func() bool { return strings.Contains(out.String(), label) },
			time.Second, 5*time.Millisecond, "step %d never rendered", i)
		sched.Advance(time.Second)
	}
	sched.Advance(time.Second)

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, cli.ErrAborted, "the empty script aborts at the form")
	case <-time.After(2 * time.Second):
		t.Fatal("wizard did not reach the form")
	}
	assert.Equal(t, domain.ScreenCollecting, ctrl.Screen())
}

func TestWizard_InterruptWhileGenerating(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	gen := ports.GeneratorFunc(func(_ context.Context, req domain.TripRequest) (domain.Itinerary, error) {
		<-release
		return domain.Itinerary{Destination: req.Destination}, nil
	})
	ctrl, sched := newController(t, gen)
	require.NoError(t, ctrl.Start(context.Background()))
	sched.Advance(5 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wiz := cli.NewWizard(ctrl, parisScript(), cli.WithOutput(&syncBuffer{}, false))

	errc := make(chan error, 1)
	go func() { errc <- wiz.Run(ctx) }()

	require.Eventually(t, func() bool { return ctrl.Screen() == domain.ScreenGenerating },
		time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("wizard ignored cancellation")
	}
	assert.Equal(t, domain.ScreenCollecting, ctrl.Screen(), "interrupting abandons the generation")
}
