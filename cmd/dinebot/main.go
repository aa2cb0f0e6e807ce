// Package main implements the dinebot CLI: an interactive menu assistant,
// one-shot and batch queries, the HTTP API, and question-set reports.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	appconfig "github.com/cognicore/dinebot/internal/config"
	"github.com/cognicore/dinebot/internal/logging"
	"github.com/cognicore/dinebot/pkg/dinebot"
	"github.com/cognicore/dinebot/pkg/dinebot/config"
	"github.com/cognicore/dinebot/pkg/dinebot/store"
	"github.com/cognicore/dinebot/pkg/dinebot/store/sqlite"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// options holds the persistent flags shared by every command.
type options struct {
	configPath string
	dbPath     string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "dinebot",
		Short: "Menu question answering for The Golden Spoon",
		Long: `dinebot answers free-text questions about a restaurant menu: prices,
dietary options, dish details, and opening hours.

Configuration is read from --config (YAML) and DINEBOT_* environment
variables. Without a database the built-in menu is used.`,
		Version:      version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (YAML)")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite database path (overrides data.db_path)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (overrides logging.level)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: json or console")

	root.AddCommand(
		newChatCmd(opts),
		newAskCmd(opts),
		newBatchCmd(opts),
		newServeCmd(opts),
		newSeedCmd(opts),
		newReportCmd(opts),
	)
	return root
}

// runtime is everything a command needs once configuration is resolved.
type runtime struct {
	cfg    *appconfig.Config
	logger *zap.Logger
	engine *dinebot.Engine
}

func (r *runtime) Close() {
	_ = r.logger.Sync()
}

// loadConfig resolves the app config with flag overrides applied.
func (o *options) loadConfig() (*appconfig.Config, error) {
	cfg, err := appconfig.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.dbPath != "" {
		cfg.Data.DBPath = o.dbPath
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Logging.Format = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup builds the engine. Logs go to logOut so stdout stays clean for
// answers.
func (o *options) setup(ctx context.Context, logOut io.Writer, obs dinebot.Observer) (*runtime, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewWriter(logOut, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg, logger: logger}

	loader := config.Loader{
		MenuPath:            cfg.Data.MenuPath,
		RestaurantPath:      cfg.Data.RestaurantPath,
		LexiconPath:         cfg.Data.LexiconPath,
		DictPath:            cfg.Data.DictPath,
		StoplistPath:        cfg.Data.StoplistPath,
		SimilarityThreshold: cfg.Engine.SimilarityThreshold,
		VocabularyThreshold: cfg.Engine.VocabularyThreshold,
	}

	if cfg.Data.DBPath != "" {
		if err := loadFromStore(ctx, cfg.Data.DBPath, &loader, logger); err != nil {
			return nil, err
		}
	}

	comp, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load components: %w", err)
	}
	rt.engine = dinebot.FromComponents(comp, logger, obs)

	lex := comp.Lexicon.Stats()
	logger.Debug("engine ready",
		zap.Int("items", comp.Catalog.Len()),
		zap.Int("synonym_groups", lex.SynonymGroups),
		zap.Int("synonym_variants", lex.TotalVariants),
		zap.Int("stopwords", comp.Stoplist.Len()),
		zap.Int("vocabulary", len(comp.Extractor.Vocabulary())),
		zap.String("restaurant", comp.Restaurant.Name),
		zap.String("db", cfg.Data.DBPath),
	)
	return rt, nil
}

// loadFromStore points loader at the menu and tuning data kept in the
// database. An empty menu table leaves the menu file in charge.
func loadFromStore(ctx context.Context, path string, loader *config.Loader, logger *zap.Logger) error {
	st, err := sqlite.OpenSQLite(ctx, path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	cat, err := store.LoadCatalog(ctx, st)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if cat.Len() > 0 {
		loader.Items = cat.Items()
	} else {
		logger.Warn("database has no menu items, using menu file", zap.String("db", path))
	}
	if v := st.Stoplist(); v != nil {
		loader.Stops = v.AllStops()
	}
	loader.Phrases = store.Phrases(st.Dict())
	return nil
}
