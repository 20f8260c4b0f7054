// studentgen generates a synthetic dataset of fictitious students and writes
// it as a delimited text file, optionally mirroring it into SQLite.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/studentgen/studentgen/internal/config"
	"github.com/studentgen/studentgen/internal/database"
	"github.com/studentgen/studentgen/internal/export"
	"github.com/studentgen/studentgen/internal/generator"
	"github.com/studentgen/studentgen/internal/models"
	"github.com/studentgen/studentgen/internal/services/mirror"
	"github.com/studentgen/studentgen/internal/stats"
	"github.com/studentgen/studentgen/internal/tui"
)

// Build information (set via ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// options holds the parsed command line. set records which flags were given
// explicitly, so zero values can still override the configuration.
type options struct {
	configPath  string
	writeConfig bool
	count       int
	seed        int64
	output      string
	dbPath      string
	preview     bool
	debug       bool

	set map[string]bool
}

func main() {
	var (
		opts        options
		showVersion bool
	)
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.BoolVar(&opts.writeConfig, "write-config", false, "Write the effective configuration and exit")
	flag.IntVar(&opts.count, "count", 0, "Number of students to generate")
	flag.Int64Var(&opts.seed, "seed", 0, "Random seed (0 picks one from the clock)")
	flag.StringVar(&opts.output, "output", "", "Output file path")
	flag.StringVar(&opts.dbPath, "db", "", "Mirror the dataset into this SQLite database")
	flag.BoolVar(&opts.preview, "preview", false, "Review the dataset in a terminal preview before writing")
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&showVersion, "version", false, "Show version and exit")
	flag.Parse()

	opts.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if showVersion {
		fmt.Printf("studentgen version %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		slog.Info("received shutdown signal", "signal", sig)
		cancel()

		// Force exit after timeout
		time.AfterFunc(10*time.Second, func() {
			slog.Error("forced shutdown after timeout")
			os.Exit(1)
		})
	}()

	if err := run(ctx, opts, os.Stdout); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, stdout io.Writer) error {
	cfg, cfgPath, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	applyOverrides(cfg, opts)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	closeLog, err := setupLogging(cfg, opts.debug)
	if err != nil {
		return err
	}
	defer closeLog()

	if opts.writeConfig {
		path := config.ConfigPath(opts.configPath)
		if err := config.Save(cfg, path); err != nil {
			return fmt.Errorf("writing configuration: %w", err)
		}
		fmt.Fprintf(stdout, "Configuration written to %s\n", path)
		return nil
	}

	slog.Info("studentgen starting",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cfgPath,
	)

	comma, err := cfg.Output.Comma()
	if err != nil {
		return fmt.Errorf("output delimiter: %w", err)
	}
	if err := config.EnsureOutputDir(cfg.Output.Path); err != nil {
		return err
	}

	gen := generator.New(generatorConfig(cfg), namesFunc(cfg.Names.Source))
	students, err := gen.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generating dataset: %w", err)
	}

	summary := stats.Summarize(students)
	slog.Info("dataset summary", "summary", summary)

	if opts.preview {
		tui.Version = Version
		tui.BuildTime = BuildTime

		outcome, err := tui.Run(ctx, students, summary, tui.Options{
			ColorScheme: cfg.Display.ColorScheme,
			OutputPath:  cfg.Output.Path,
			Seed:        gen.Seed(),
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("preview: %w", err)
		}
		if outcome != tui.OutcomeConfirmed {
			slog.Info("preview cancelled, dataset discarded")
			fmt.Fprintln(stdout, "Dataset discarded.")
			return nil
		}
	}

	result, err := export.WriteCSV(cfg.Output.Path, students, export.Options{Comma: comma})
	if err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}

	slog.Info("dataset written",
		"path", result.Path,
		"rows", result.Rows,
		"bytes", result.Bytes,
	)

	if cfg.Database.Path != "" {
		if err := mirrorDataset(ctx, cfg, gen.Seed(), students); err != nil {
			return err
		}
	}

	fmt.Fprintf(stdout, "Dataset '%s' created and saved.\n", result.Name())
	return nil
}

// applyOverrides copies explicitly given flags over the loaded configuration.
func applyOverrides(cfg *config.Config, opts options) {
	if opts.set["count"] {
		cfg.Dataset.Count = opts.count
	}
	if opts.set["seed"] {
		cfg.Dataset.Seed = opts.seed
	}
	if opts.set["output"] {
		cfg.Output.Path = opts.output
	}
	if opts.set["db"] {
		cfg.Database.Path = opts.dbPath
	}
}

func setupLogging(cfg *config.Config, debug bool) (func(), error) {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	} else {
		switch cfg.Logging.Level {
		case config.LogLevelDebug:
			logLevel = slog.LevelDebug
		case config.LogLevelWarn:
			logLevel = slog.LevelWarn
		case config.LogLevelError:
			logLevel = slog.LevelError
		}
	}

	logPath, err := config.EnsureLogDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	closer := func() {}
	var logHandler slog.Handler
	if logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		closer = func() { logFile.Close() }

		logHandler = slog.NewJSONHandler(logFile, &slog.HandlerOptions{
			Level: logLevel,
		})
	} else {
		logHandler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		})
	}

	slog.SetDefault(slog.New(logHandler))
	return closer, nil
}

func generatorConfig(cfg *config.Config) generator.Config {
	d := cfg.Dataset
	return generator.Config{
		Count:        d.Count,
		Seed:         d.Seed,
		AgeMin:       d.AgeMin,
		AgeMax:       d.AgeMax,
		Schools:      d.Schools,
		Occupations:  d.Occupations,
		SalaryPolicy: d.SalaryPolicy,
		SalaryRanges: d.SalaryRangeTable(),
		FlatSalary:   d.FlatSalary,
		Weight:       d.Metrics.Weight,
		Size:         d.Metrics.Size,
		Grades:       d.Metrics.Grades,
		FeetSizes:    d.Metrics.FeetSizes,
		EyeColors:    d.Metrics.EyeColors,
		HairColors:   d.Metrics.HairColors,
	}
}

func namesFunc(source config.NameProvider) generator.NamesFunc {
	if source == config.NameProviderBuiltin {
		return generator.NewBuiltinNames
	}
	return generator.NewFakerNames
}

func mirrorDataset(ctx context.Context, cfg *config.Config, seed int64, students []*models.Student) error {
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("checking database: %w", err)
	}

	migrator, err := database.NewMigrator(db)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}

	result, err := migrator.MigrateUp(ctx)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	if len(result.Applied) > 0 {
		slog.Info("applied migrations",
			"count", len(result.Applied),
			"to_version", result.To,
		)
	}

	_, err = mirror.NewService(db, cfg.Database.Replace).Save(ctx, mirror.SaveInput{
		Seed:         seed,
		SalaryPolicy: cfg.Dataset.SalaryPolicy,
		OutputPath:   cfg.Output.Path,
		Students:     students,
	})
	if err != nil {
		return err
	}

	if st, err := db.GetStats(ctx); err == nil {
		slog.Debug("database stats",
			"path", st.Path,
			"pages", st.PageCount,
			"page_size", st.PageSize,
			"journal_mode", st.JournalMode,
		)
	}
	return nil
}
