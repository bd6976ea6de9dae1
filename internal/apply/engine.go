package apply

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"reposetup/internal/config"
	"reposetup/internal/output"
	"reposetup/internal/ruleset"
	"reposetup/internal/step"
)

func exitCodeForRun(fatal, partial bool) int {
	// Exit code contract:
	// 0 = all steps applied (or skipped by configuration)
	// 2 = partial failure (at least one step failed; the run still attempted every step)
	// 3 = fatal error (nothing was attempted)
	if fatal {
		return 3
	}
	if partial {
		return 2
	}
	return 0
}

func setupOutputManager(cfg *config.Config, console io.Writer) (*output.Manager, error) {
	outMgr := output.NewManager()

	if !cfg.Output.NoConsole {
		if err := outMgr.AddSink(output.NewConsoleSink(console, cfg.Output.ConsoleFormat)); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	if cfg.Output.Out != "" {
		fs, err := output.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(fs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	return outMgr, nil
}

type Engine struct {
	api    step.API
	steps  []step.Step
	stdout io.Writer
	stderr io.Writer
}

func NewEngine(api step.API) *Engine {
	return &Engine{
		api:    api,
		steps:  step.All(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Run applies every step in phase order and returns the process exit code.
// Step failures are recorded and reported; they never abort the remaining
// steps, so a partial run leaves the repository in a valid, independently
// useful state.
func (e *Engine) Run(ctx context.Context, cfg *config.Config) int {
	if ctx == nil || cfg == nil {
		fmt.Fprintln(e.stderr, "Error: engine requires a context and a config")
		return exitCodeForRun(true, false)
	}

	repo := cfg.Target.Owner + "/" + cfg.Target.Name

	if cfg.Runtime.DryRun {
		if err := e.printPlan(cfg, repo); err != nil {
			fmt.Fprintf(e.stderr, "Error: %v\n", err)
			return exitCodeForRun(true, false)
		}
		return 0
	}

	outMgr, err := setupOutputManager(cfg, e.stdout)
	if err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return exitCodeForRun(true, false)
	}

	runCtx, cancel := context.WithTimeout(ctx, cfg.Runtime.Timeout)
	defer cancel()

	_ = outMgr.Write(output.Event{Type: "run.started", Repo: repo, Steps: len(e.steps)})

	var applied, failed, skipped int
	for _, s := range e.steps {
		res := s.Run(runCtx, e.api, cfg)
		switch res.Status {
		case step.StatusApplied:
			applied++
		case step.StatusFailed:
			failed++
			// Only the ruleset phase surfaces its failure as a warning; the
			// rest stay in the result stream.
			if s.ID() == step.RulesetStepID {
				fmt.Fprintf(e.stderr, "warning: branch ruleset creation failed: %s\n", res.Message)
			}
		case step.StatusSkipped:
			skipped++
		}
		_ = outMgr.Write(res)
	}

	exitCode := exitCodeForRun(false, failed > 0)
	_ = outMgr.Write(output.Event{Type: "run.finished", Repo: repo, ExitCode: exitCode})
	if err := outMgr.Close(); err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
	}

	if !cfg.Output.NoConsole && cfg.Output.ConsoleFormat == "text" {
		e.printSummary(repo, applied, failed, skipped)
	}

	return exitCode
}

func (e *Engine) printSummary(repo string, applied, failed, skipped int) {
	summary := fmt.Sprintf("%d applied, %d failed, %d skipped", applied, failed, skipped)
	if failed > 0 {
		summary = color.New(color.FgRed).Sprint(summary)
	} else {
		summary = color.New(color.FgGreen).Sprint(summary)
	}
	fmt.Fprintf(e.stdout, "\n%s: %s\n", repo, summary)
}

// printPlan writes the step list and the ruleset payload without touching
// the network.
func (e *Engine) printPlan(cfg *config.Config, repo string) error {
	fmt.Fprintf(e.stdout, "Plan for %s (branch %s):\n", repo, cfg.Target.Branch)
	for _, s := range e.steps {
		fmt.Fprintf(e.stdout, "  - %s: %s\n", s.ID(), s.Title())
	}

	payload, err := json.MarshalIndent(ruleset.Build(cfg.RulesetConfig()), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ruleset payload: %w", err)
	}
	fmt.Fprintf(e.stdout, "\nRuleset payload:\n%s\n", payload)
	return nil
}
