package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/tripwizard/internal/config"
	"github.com/aretw0/tripwizard/internal/presentation/tui"
	"github.com/aretw0/tripwizard/internal/runtime"
	"github.com/aretw0/tripwizard/pkg/adapters/mock"
	"github.com/aretw0/tripwizard/pkg/observability"
	"github.com/google/uuid"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	Config  config.Config
	Debug   bool
	NoColor bool
	Plain   bool   // print the itinerary as raw markdown
	OutPath string // export the reviewed itinerary here
}

// Execute runs one interactive wizard session on the process terminal.
func Execute(ctx context.Context, opts RunOptions) error {
	logger := createLogger(opts.Debug)
	cfg := opts.Config

	sigCtx := NewSignalContext(ctx)
	defer sigCtx.Cancel()

	gen := mock.New(
		mock.WithDelay(cfg.Generation.Delay),
		mock.WithCurrency(cfg.Generation.Currency),
	)
	ctrl, err := runtime.NewController(gen,
		runtime.WithSessionID(uuid.NewString()),
		runtime.WithSteps(cfg.PreloaderSteps()),
		runtime.WithTiming(cfg.Timing()),
		runtime.WithGenerationTimeout(cfg.Generation.Timeout),
		runtime.WithLogger(logger),
		runtime.WithLifecycleHooks(observability.LoggingHooks(logger)),
	)
	if err != nil {
		return fmt.Errorf("error initializing wizard: %w", err)
	}
	defer ctrl.Close()

	live := tui.IsTerminal(os.Stdout)
	profile := tui.Profile(os.Stdout, opts.NoColor)
	tui.PrintBanner(os.Stdout, profile)

	wiz := NewWizard(ctrl, NewSurveyPrompter(os.Stdin, os.Stdout, os.Stderr),
		WithOutput(os.Stdout, live),
		WithProfile(profile),
		WithMarkdownRenderer(tui.NewRenderer(opts.Plain || !live, tui.Width(os.Stdout))),
		WithExportPath(opts.OutPath),
		WithWizardLogger(logger),
	)

	runErr := wiz.Run(sigCtx)
	if sigCtx.Err() != nil && runErr == nil {
		runErr = sigCtx.Err()
	}
	logCompletion(os.Stdout, runErr, sigCtx.Signal())
	return handleExecutionError(runErr)
}
