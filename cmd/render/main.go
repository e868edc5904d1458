package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bike-dashboard/internal/config"
	"bike-dashboard/internal/model"
	"bike-dashboard/internal/pipeline"
	"bike-dashboard/internal/store"
	"bike-dashboard/pkg/logger"
	"bike-dashboard/pkg/utils"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	var configPath, exportFormat string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the bike sharing dashboard charts to files",
		Long: "Loads the rental dataset, derives the summary tables and writes every " +
			"chart into <render.output_dir>/<run-id>/.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, exportFormat)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a config file (defaults to ./config.yaml lookup)")
	cmd.Flags().StringVar(&exportFormat, "export", "", "also write the summary tables as csv, json or xlsx")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, exportFormat string) error {
	switch exportFormat {
	case "", pipeline.FormatCSV, pipeline.FormatJSON, pipeline.FormatXLSX:
	default:
		return fmt.Errorf("unsupported export format %q", exportFormat)
	}

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.App.LogLevel, cfg.App.Env)

	if cfg.Store.Path != "" {
		if err := store.InitDB(cfg.Store.Path); err != nil {
			return fmt.Errorf("failed to open run history: %w", err)
		}
		defer store.Close()
	}

	opts, err := pipeline.OptionsFromConfig(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.New().String()
	res, err := pipeline.Run(ctx, runID, model.TriggerCLI, opts)
	if err != nil {
		return err
	}

	om := utils.NewOutputManager(cfg.Render.OutputDir)
	for _, a := range res.Artifacts {
		path, err := om.WriteFile(runID, a.Name+"."+string(opts.Format), a.Data)
		if err != nil {
			return err
		}
		log.WithField("chart", a.Name).Infof("Wrote %s", path)
	}

	if exportFormat != "" {
		path, err := om.GetOutputFilePath(runID, "bike-rentals-summary."+exportFormat)
		if err != nil {
			return err
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()

		exp, err := pipeline.WriteSummary(f, res.Summary, exportFormat)
		if err != nil {
			return err
		}
		log.WithField("rows", exp.RecordCount).Infof("Wrote %s", path)
	}

	fmt.Printf("Run %s: %d charts in %s\n", runID, len(res.Artifacts), res.Duration)
	return nil
}
