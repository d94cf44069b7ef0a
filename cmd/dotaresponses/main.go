// Command dotaresponses searches a corpus of Dota 2 hero voice responses from
// the command line, an interactive terminal UI, or a Discord bot.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"dotaresponses/internal/config"
	"dotaresponses/internal/corpus"
	"dotaresponses/internal/logging"
	"dotaresponses/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries state shared by every subcommand once the root pre-run hook
// has loaded configuration.
type app struct {
	cfgPath    string
	corpusPath string
	format     string

	cfg    *config.AppConfig
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "dotaresponses",
		Short:        "Find Dota 2 voice responses by text",
		Long:         "Search a scraped corpus of Dota 2 hero responses: best single match by word count, or every line containing a text.",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/dotaresponses/config.yaml if not provided)")
	root.PersistentFlags().StringVar(&a.corpusPath, "responses", "", "Path to the responses corpus (overrides config and RESPONSES_FILE)")
	root.PersistentFlags().StringVar(&a.format, "format", "", "Corpus encoding: json, yaml or msgpack (default: from file extension)")

	root.AddCommand(
		newBestCmd(a),
		newAllCmd(a),
		newStatsCmd(a),
		newConvertCmd(a),
		newTUICmd(a),
		newBotCmd(a),
	)
	return root
}

func (a *app) setup() error {
	_ = godotenv.Load()

	var (
		cfg *config.AppConfig
		err error
	)
	if a.cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(a.cfgPath)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.corpusPath != "" {
		cfg.Corpus.Path = a.corpusPath
	}
	if a.format != "" {
		cfg.Corpus.Format = a.format
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) corpusFormat() (corpus.Format, error) {
	return corpus.ParseFormat(a.cfg.Corpus.Format)
}

// openService loads the corpus with the serving policy from config.
func (a *app) openService() (*service.ResponseService, error) {
	format, err := a.corpusFormat()
	if err != nil {
		return nil, err
	}
	store, err := service.OpenStore(a.cfg.Corpus.Path, format, a.cfg.Corpus.Required, a.logger)
	if err != nil {
		return nil, err
	}
	return service.NewResponseService(store, a.cfg.Search.GroupSuffix, a.cfg.Search.MaxResults), nil
}

// watch reloads the service's corpus on file changes until ctx ends. It is a
// no-op unless corpus.watch is enabled.
func (a *app) watch(ctx context.Context, svc *service.ResponseService) error {
	if !a.cfg.Corpus.Watch {
		return nil
	}
	format, err := a.corpusFormat()
	if err != nil {
		return err
	}
	w, err := corpus.NewWatcher(svc.Store(), a.cfg.Corpus.Path, format, corpus.WithLogger(a.logger))
	if err != nil {
		return fmt.Errorf("watch corpus: %w", err)
	}
	go func() {
		if err := w.Run(ctx); err != nil && ctx.Err() == nil {
			a.logger.Warn("corpus watcher stopped", "err", err)
		}
	}()
	return nil
}
