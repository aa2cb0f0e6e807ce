package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/dinebot/internal/logging"
	"github.com/cognicore/dinebot/pkg/dinebot/config"
	"github.com/cognicore/dinebot/pkg/dinebot/menu"
	"github.com/cognicore/dinebot/pkg/dinebot/store"
	"github.com/cognicore/dinebot/pkg/dinebot/store/sqlite"
)

func newSeedCmd(opts *options) *cobra.Command {
	var (
		menuPath     string
		stoplistPath string
		dictPath     string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the menu and tuning data into the database",
		Long: `Upsert menu items into the SQLite database given by --db (or
data.db_path). Without --menu the built-in menu is used. Stoplist and
dictionary files, when given, are stored too and picked up by later runs.

Examples:
  dinebot seed --db dinebot.db
  dinebot seed --db dinebot.db --menu menu.yaml --dict dict.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Data.DBPath == "" {
				return fmt.Errorf("--db or data.db_path is required")
			}
			logger, err := logging.NewWriter(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			if menuPath == "" {
				menuPath = cfg.Data.MenuPath
			}
			if stoplistPath == "" {
				stoplistPath = cfg.Data.StoplistPath
			}
			if dictPath == "" {
				dictPath = cfg.Data.DictPath
			}

			var items []menu.Item
			if menuPath != "" {
				if items, err = config.LoadMenu(menuPath); err != nil {
					return fmt.Errorf("load menu: %w", err)
				}
			} else {
				items = config.DefaultMenu()
			}
			// Reject duplicates before touching the database.
			if _, err := menu.NewCatalog(items); err != nil {
				return fmt.Errorf("validate menu: %w", err)
			}

			st, err := sqlite.OpenSQLite(ctx, cfg.Data.DBPath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			if err := store.Seed(ctx, st, items); err != nil {
				return fmt.Errorf("seed menu: %w", err)
			}

			var stops, phrases int
			if stoplistPath != "" {
				sl, err := config.LoadStoplist(stoplistPath)
				if err != nil {
					return fmt.Errorf("load stoplist: %w", err)
				}
				if err := st.UpsertStoplist(ctx, sl.Terms); err != nil {
					return fmt.Errorf("store stoplist: %w", err)
				}
				stops = len(sl.Terms)
			}
			if dictPath != "" {
				entries, err := config.LoadDict(dictPath)
				if err != nil {
					return fmt.Errorf("load dictionary: %w", err)
				}
				if err := store.SeedDict(ctx, st, entries); err != nil {
					return fmt.Errorf("store dictionary: %w", err)
				}
				phrases = len(entries)
			}

			total, err := st.CountItems(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d items (%d in database), %d stopwords, %d dictionary entries\n",
				len(items), total, stops, phrases)
			logger.Info("seed complete",
				zap.String("db", cfg.Data.DBPath),
				zap.Int("items", total),
				zap.Int("stopwords", stops),
				zap.Int("dict_entries", phrases),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&menuPath, "menu", "", "menu YAML (default: built-in menu)")
	cmd.Flags().StringVar(&stoplistPath, "stoplist", "", "stoplist YAML to store")
	cmd.Flags().StringVar(&dictPath, "dict", "", "dictionary file to store")
	return cmd
}
