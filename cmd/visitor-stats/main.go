package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/visitor-stats/internal/config"
	"github.com/iwvelando/visitor-stats/internal/dashboard"
	"github.com/iwvelando/visitor-stats/internal/export"
	"github.com/iwvelando/visitor-stats/internal/insight"
	"github.com/iwvelando/visitor-stats/internal/logging"
	"github.com/iwvelando/visitor-stats/internal/sheets"
	"github.com/iwvelando/visitor-stats/pkg/constants"
	"github.com/iwvelando/visitor-stats/pkg/output"
	"github.com/iwvelando/visitor-stats/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// loadConfiguration reads path ("-" for stdin), falling back to defaults plus
// environment overrides when the default config file is absent.
func loadConfiguration(path string, explicit bool) (*config.Configuration, error) {
	if path == "-" {
		return config.LoadConfigurationFromReader(os.Stdin)
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !explicit {
		return config.Default(), nil
	}
	return config.LoadConfiguration(path)
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file, or - to read it from stdin")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json, xlsx")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	outPath := flag.String("out", "", "write output to this file instead of stdout (required for xlsx)")
	flag.Parse()

	explicitConfig := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicitConfig = true
		}
	})

	// Secrets such as the API key may live in .env
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("{\"op\": \"main\", \"level\": \"warn\", \"msg\": \"failed to load .env\", \"error\": \"%v\"}\n", err)
	}

	conf, err := loadConfiguration(*configLocation, explicitConfig)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Initialize logging based on config and CLI override
	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}
	if outputFormat == constants.OutputFormatXLSX && *outPath == "" {
		logger.Fatal("xlsx output requires -out",
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := sheets.NewClient(logger, conf.Source, nil)
	loader := dashboard.NewLoader(logger, client, conf)

	// Run one load cycle; a failed cycle still yields a state to report.
	st, err := loader.Load(ctx)
	if err != nil {
		logger.Error("load cycle failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	summary := insight.Build(st, conf.Dashboard)
	if err := writeOutput(*outPath, outputFormat, st, summary); err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.String("format", outputFormat),
			zap.String("path", *outPath),
			zap.Error(err),
		)
	}

	if !st.Ready() {
		_ = logger.Sync()
		os.Exit(1)
	}
}

// writeOutput renders st in format to path, or to stdout when path is empty.
// The file is closed before writeOutput returns.
func writeOutput(path, format string, st *dashboard.State, summary insight.Summary) (err error) {
	out := os.Stdout
	if path != "" {
		file, createErr := os.Create(path)
		if createErr != nil {
			return fmt.Errorf("failed to create output file: %w", createErr)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close output file: %w", cerr)
			}
		}()
		out = file
	}

	switch format {
	case constants.OutputFormatPretty:
		output.PrettyFormat(out, st, summary)
		return nil
	case constants.OutputFormatCSV:
		return output.CsvFormat(out, st)
	case constants.OutputFormatJSON:
		return output.JSONFormat(out, st, summary)
	case constants.OutputFormatXLSX:
		return export.Write(out, st)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
