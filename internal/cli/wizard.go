package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/tripwizard/internal/logging"
	"github.com/aretw0/tripwizard/internal/presentation/report"
	"github.com/aretw0/tripwizard/internal/presentation/tui"
	"github.com/aretw0/tripwizard/internal/runtime"
	"github.com/aretw0/tripwizard/pkg/domain"
	"github.com/muesli/termenv"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Wizard drives one controller from the terminal: it renders the preloader,
// asks for the trip, waits for the itinerary and shows it.
type Wizard struct {
	ctrl     *runtime.Controller
	prompter Prompter
	out      io.Writer
	live     bool // out is a terminal; lines are redrawn in place
	profile  termenv.Profile
	render   func(string) (string, error)
	export   string
	today    func() domain.Date
	spin     time.Duration
	logger   *slog.Logger
}

// WizardOption configures a Wizard.
type WizardOption func(*Wizard)

// WithOutput sets the writer the wizard draws on. live enables in-place redraws.
func WithOutput(w io.Writer, live bool) WizardOption {
	return func(wz *Wizard) {
		if w != nil {
			wz.out = w
			wz.live = live
		}
	}
}

// WithProfile sets the color profile.
func WithProfile(p termenv.Profile) WizardOption {
	return func(wz *Wizard) {
		wz.profile = p
	}
}

// WithMarkdownRenderer sets how the itinerary markdown is rendered on screen.
func WithMarkdownRenderer(fn func(string) (string, error)) WizardOption {
	return func(wz *Wizard) {
		if fn != nil {
			wz.render = fn
		}
	}
}

// WithExportPath writes every reviewed itinerary to path as markdown.
func WithExportPath(path string) WizardOption {
	return func(wz *Wizard) {
		wz.export = path
	}
}

// WithToday overrides the date used for form defaults.
func WithToday(fn func() domain.Date) WizardOption {
	return func(wz *Wizard) {
		if fn != nil {
			wz.today = fn
		}
	}
}

// WithWizardLogger configures the wizard logger.
func WithWizardLogger(logger *slog.Logger) WizardOption {
	return func(wz *Wizard) {
		if logger != nil {
			wz.logger = logger
		}
	}
}

// NewWizard creates a Wizard for ctrl.
func NewWizard(ctrl *runtime.Controller, p Prompter, opts ...WizardOption) *Wizard {
	wz := &Wizard{
		ctrl:     ctrl,
		prompter: p,
		out:      os.Stdout,
		profile:  termenv.Ascii,
		render:   tui.NewRenderer(true, 80),
		today:    func() domain.Date { return domain.DateOf(time.Now()) },
		spin:     100 * time.Millisecond,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(wz)
	}
	return wz
}

// Run starts the controller and loops over its screens until the user is done
// with an itinerary, aborts, or ctx is cancelled.
func (wz *Wizard) Run(ctx context.Context) error {
	if err := wz.ctrl.Start(ctx); err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		snap := wz.ctrl.Snapshot()
		if wz.ctrl.Closed() {
			return domain.ErrClosed
		}

		var err error
		switch snap.Screen {
		case domain.ScreenPreloading:
			err = wz.preload(ctx)
		case domain.ScreenCollecting:
			err = wz.collect(ctx, snap)
		case domain.ScreenGenerating:
			err = wz.wait(ctx, snap)
		case domain.ScreenReviewing:
			var done bool
			done, err = wz.review(ctx, snap)
			if done && err == nil {
				return nil
			}
		default:
			err = fmt.Errorf("unknown screen %q", snap.Screen)
		}
		if err != nil {
			return err
		}
	}
}

func (wz *Wizard) preload(ctx context.Context) error {
	var last string
	for {
		changed := wz.ctrl.Changed()
		snap := wz.ctrl.Snapshot()
		if snap.Screen != domain.ScreenPreloading || wz.ctrl.Closed() {
			if wz.live && last != "" {
				fmt.Fprint(wz.out, "\r\x1b[K")
			}
			return nil
		}

		line := ""
		if snap.Animator != nil {
			line = tui.StepLine(wz.profile, snap.Steps, *snap.Animator)
		}
		if line != last {
			switch {
			case wz.live:
				fmt.Fprint(wz.out, "\r\x1b[K"+line)
			case line != "":
				fmt.Fprintln(wz.out, line)
			}
			last = line
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		}
	}
}

func (wz *Wizard) collect(ctx context.Context, snap domain.Snapshot) error {
	if snap.Error != "" {
		fmt.Fprintln(wz.out, wz.warn("! "+snap.Error))
	}
	req, err := AskTrip(ctx, wz.prompter, snap.Request, wz.today())
	if err != nil {
		return err
	}

	err = wz.ctrl.Submit(ctx, req)
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		// The controller keeps the message; the next pass prints it and asks again.
		wz.logger.Debug("Trip request rejected", "err", err)
		return nil
	}
	return err
}

func (wz *Wizard) wait(ctx context.Context, snap domain.Snapshot) error {
	dest := ""
	if snap.Request != nil {
		dest = snap.Request.Destination
	}
	msg := fmt.Sprintf("Planning your trip to %s...", dest)
	if !wz.live {
		fmt.Fprintln(wz.out, msg)
		return wz.awaitResult(ctx, nil, nil)
	}

	ticker := time.NewTicker(wz.spin)
	defer ticker.Stop()
	frame := 0
	fmt.Fprintf(wz.out, "\r\x1b[K%s %s", spinnerFrames[frame], msg)
	err := wz.awaitResult(ctx, ticker.C, func() {
		frame = (frame + 1) % len(spinnerFrames)
		fmt.Fprintf(wz.out, "\r\x1b[K%s %s", spinnerFrames[frame], msg)
	})
	fmt.Fprint(wz.out, "\r\x1b[K")
	return err
}

// awaitResult waits for the controller to leave Generating. On cancellation the
// generation is abandoned so the controller never stays in Generating.
func (wz *Wizard) awaitResult(ctx context.Context, tc <-chan time.Time, tick func()) error {
	for {
		changed := wz.ctrl.Changed()
		if wz.ctrl.Screen() != domain.ScreenGenerating || wz.ctrl.Closed() {
			return nil
		}
		select {
		case <-ctx.Done():
			if err := wz.ctrl.Cancel(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, domain.ErrInvalidTransition) {
				wz.logger.Warn("Failed to cancel generation", "err", err)
			}
			return ctx.Err()
		case <-changed:
		case <-tc:
			tick()
		}
	}
}

func (wz *Wizard) review(ctx context.Context, snap domain.Snapshot) (bool, error) {
	if snap.Itinerary == nil {
		return false, fmt.Errorf("reviewing without an itinerary")
	}
	md := report.Markdown(*snap.Itinerary)

	rendered, err := wz.render(md)
	if err != nil {
		wz.logger.Warn("Markdown render failed, printing raw", "err", err)
		rendered = md
	}
	fmt.Fprintln(wz.out, rendered)

	if wz.export != "" {
		if err := os.WriteFile(wz.export, []byte(md), 0o644); err != nil {
			return false, fmt.Errorf("failed to export itinerary: %w", err)
		}
		printSystemMessage(wz.out, "Itinerary saved to %s", wz.export)
	}

	edit, err := wz.prompter.Confirm(ctx, ConfirmConfig{Message: "Edit trip?", Default: false})
	if err != nil {
		return false, err
	}
	if !edit {
		return true, nil
	}
	return false, wz.ctrl.Edit(ctx)
}

func (wz *Wizard) warn(s string) string {
	return termenv.String(s).Foreground(wz.profile.Color("#f87171")).String()
}
