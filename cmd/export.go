package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/ytexport/internal/formatter"
	"github.com/desertthunder/ytexport/internal/shared"
	"github.com/desertthunder/ytexport/internal/tasks"
	"github.com/desertthunder/ytexport/internal/ui"
	"github.com/urfave/cli/v3"
)

// Export runs resolve → list → statistics → merge → comments and writes the artifact.
//
// Flags override the [export] section of the config. The locator is prompted for when not given.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	if cmd.IsSet("output") {
		config.Export.Output = cmd.String("output")
	}
	if cmd.IsSet("format") {
		config.Export.Format = cmd.String("format")
	}
	if cmd.IsSet("max-comments") {
		config.Export.MaxComments = int(cmd.Int("max-comments"))
	}
	if cmd.Bool("no-comments") {
		config.Export.IncludeComments = false
	}

	if err := config.Validate(); err != nil {
		return err
	}
	if err := r.configureLogging(config, cmd.Bool("verbose")); err != nil {
		return err
	}

	format, err := formatter.ParseFormat(config.Export.Format)
	if err != nil {
		return err
	}

	locator := strings.TrimSpace(cmd.StringArg("locator"))
	if locator == "" {
		if locator, err = r.promptLocator(); err != nil {
			return err
		}
	}

	api, err := r.dataAPI(ctx, config)
	if err != nil {
		return err
	}

	logger := shared.WithLogger(r.logger, "run", shared.GenerateID(), "locator", locator)
	engine := tasks.NewChannelEngine(api, logger)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.ListVideos, tasks.FetchComments:
				logger.Debug(update.Message, "phase", update.Phase.String())
			default:
				logger.Info(update.Message, "phase", update.Phase.String())
			}
		}
	}()

	started := time.Now()
	export, err := engine.Run(ctx, progressCh, locator, tasks.RunOpts{
		MaxComments:  config.CommentCap(),
		SkipComments: !config.Export.IncludeComments,
	})
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	result, err := formatter.Write(ctx, logger, format, export, config.Export.Output)
	if err != nil {
		return err
	}

	summary := ui.NewSummary(export, result.Files, result.ExportID, time.Since(started))
	summary.NoComments = !config.Export.IncludeComments
	return r.writePlain("%s", r.palette.RenderSummary(summary))
}

// Resolve prints the channel id for a channel URL or handle.
func (r *Runner) Resolve(ctx context.Context, cmd *cli.Command) error {
	locator := strings.TrimSpace(cmd.StringArg("locator"))
	if locator == "" {
		return fmt.Errorf("%w: channel URL or @handle", shared.ErrMissingArgument)
	}

	config, err := r.loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}

	api, err := r.dataAPI(ctx, config)
	if err != nil {
		return err
	}

	channelID, err := tasks.NewChannelEngine(api, r.logger).ResolveChannelID(ctx, locator)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		handle, _ := tasks.ParseHandle(locator)
		return r.writeJSON(map[string]string{"handle": handle, "channel_id": channelID}, false)
	}
	return r.writePlain("%s\n", channelID)
}
