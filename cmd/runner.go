package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytexport/internal/services"
	"github.com/desertthunder/ytexport/internal/shared"
	"github.com/desertthunder/ytexport/internal/ui"
	"github.com/urfave/cli/v3"
)

const locatorPrompt = "Enter the YouTube channel URL: "

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	api     services.DataAPI
	logger  *log.Logger
	input   io.Reader
	output  io.Writer
	getenv  func(string) string
	palette *ui.Palette
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Config and API are optional: when nil they are loaded from --config and built from the loaded credentials.
type RunnerOpts struct {
	Config  *shared.Config
	API     services.DataAPI
	Logger  *log.Logger
	Input   io.Reader
	Output  io.Writer
	Getenv  func(string) string
	Palette *ui.Palette
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.Palette == nil {
		opts.Palette = ui.Default
	}

	return &Runner{
		config:  opts.Config,
		api:     opts.API,
		logger:  opts.Logger,
		input:   opts.Input,
		output:  opts.Output,
		getenv:  opts.Getenv,
		palette: opts.Palette,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		exportCommand, resolveCommand, runsCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig returns the injected config or reads path, falling back to defaults when the file is absent.
// Environment overrides are applied last.
func (r *Runner) loadConfig(path string) (*shared.Config, error) {
	config := r.config
	if config == nil {
		if _, err := os.Stat(path); err == nil {
			if config, err = shared.LoadConfig(path); err != nil {
				return nil, fmt.Errorf("%w: %w", shared.ErrInvalidConfig, err)
			}
		} else {
			r.logger.Debug("config file not found, using defaults", "path", path)
			config = shared.DefaultConfig()
		}
	}

	config.ApplyEnv(r.getenv)
	return config, nil
}

// dataAPI returns the injected client or builds a YouTube Data API client from config.
func (r *Runner) dataAPI(ctx context.Context, config *shared.Config) (services.DataAPI, error) {
	if r.api != nil {
		return r.api, nil
	}

	svc, err := services.NewYouTubeService(ctx, services.YouTubeOpts{
		APIKey:   config.YouTube.APIKey,
		Endpoint: config.YouTube.Endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrMissingCredentials, err)
	}
	return svc, nil
}

// configureLogging applies the configured level, or debug when verbose is set.
func (r *Runner) configureLogging(config *shared.Config, verbose bool) error {
	level, err := shared.ParseLogLevel(config.Logging.Level)
	if err != nil {
		return err
	}
	if verbose {
		level = log.DebugLevel
	}
	shared.SetLogLevel(r.logger, level)
	return nil
}

// promptLocator asks for a channel URL on the runner's input.
func (r *Runner) promptLocator() (string, error) {
	if err := r.writePlain(locatorPrompt); err != nil {
		return "", err
	}

	scanner := bufio.NewScanner(r.input)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read channel URL: %w", err)
		}
		return "", fmt.Errorf("%w: no channel URL given", shared.ErrMissingArgument)
	}

	locator := strings.TrimSpace(scanner.Text())
	if locator == "" {
		return "", fmt.Errorf("%w: no channel URL given", shared.ErrMissingArgument)
	}
	return locator, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
