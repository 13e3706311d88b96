package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/geodrill/internal/config"
	"github.com/verte-zerg/geodrill/internal/language"
	"github.com/verte-zerg/geodrill/internal/logger"
	"github.com/verte-zerg/geodrill/internal/model"
	"github.com/verte-zerg/geodrill/internal/prefs"
	"github.com/verte-zerg/geodrill/internal/scheduler"
	"github.com/verte-zerg/geodrill/internal/selector"
	"github.com/verte-zerg/geodrill/internal/stats"
	"github.com/verte-zerg/geodrill/internal/store"
	"github.com/verte-zerg/geodrill/internal/taxonomy"
)

// appEnv bundles the collaborators every command needs.
type appEnv struct {
	cfg     model.Config
	log     *logger.Logger
	db      *store.Store
	kv      store.KV
	catalog *taxonomy.Catalog
	prefs   *prefs.Prefs
	repo    *stats.Repository
}

// openEnv resolves configuration and opens storage. logPath selects a log
// file; empty logs to stderr.
func openEnv(cmd *cobra.Command, logPath string) (*appEnv, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogMode, logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	catalog, err := taxonomy.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if cfg.Group == "" {
		cfg.Group = catalog.Default()
	}

	env := &appEnv{cfg: cfg, log: log, catalog: catalog}
	if flagEphemeral {
		env.kv = store.NewMemory()
	} else {
		db, err := store.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open db: %w", err)
		}
		env.db = db
		env.kv = db
	}

	ctx := context.Background()
	env.repo = stats.NewRepository(env.kv, cfg.Namespace, log)
	defaultLang := language.Default
	if cfg.Lang != "" {
		defaultLang, _ = language.Parse(cfg.Lang)
	}
	env.prefs = prefs.Load(ctx, env.kv, cfg.Namespace, cfg.Group, defaultLang, log)
	if cmd.Flags().Changed("group") {
		if err := env.useGroup(ctx, model.GroupID(flagGroup)); err != nil {
			env.Close()
			return nil, err
		}
	}
	if cmd.Flags().Changed("lang") {
		code, _ := language.Parse(flagLang)
		if err := env.prefs.SetLanguage(ctx, code); err != nil {
			log.Warn("failed to save language", "lang", code, "error", err)
		}
	}
	if !catalog.Has(env.prefs.Group()) {
		log.Warn("stored group not in catalog, using default", "group", env.prefs.Group(), "default", cfg.Group)
		if !catalog.Has(cfg.Group) {
			cfg.Group = catalog.Default()
		}
		env.prefs.ResetGroup(cfg.Group)
	}
	return env, nil
}

func (e *appEnv) useGroup(ctx context.Context, group model.GroupID) error {
	if !e.catalog.Has(group) {
		return fmt.Errorf("%w %q (see: geodrill groups)", taxonomy.ErrUnknownGroup, group)
	}
	if err := e.prefs.SetGroup(ctx, group); err != nil {
		return fmt.Errorf("failed to save group: %w", err)
	}
	return nil
}

func (e *appEnv) scheduler() *scheduler.Scheduler {
	return scheduler.New(e.repo, selector.New(), e.log)
}

func (e *appEnv) Close() {
	e.log.Sync()
	if e.db == nil {
		return
	}
	if cerr := e.db.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	catalogPath := flagCatalog
	dbPath := flagDB
	namespace := flagNamespace
	logMode := flagLogMode
	group := flagGroup
	lang := flagLang
	roundSize := flagRoundSize
	applyStringConfig(cmd, "catalog", &catalogPath, fileCfg.Quiz.Catalog)
	applyStringConfig(cmd, "db", &dbPath, fileCfg.Storage.DB)
	applyStringConfig(cmd, "namespace", &namespace, fileCfg.Storage.Namespace)
	applyStringConfig(cmd, "log-mode", &logMode, fileCfg.Log.Mode)
	applyStringConfig(cmd, "group", &group, fileCfg.Quiz.Group)
	applyStringConfig(cmd, "lang", &lang, fileCfg.Quiz.Lang)
	applyIntConfig(cmd, "round-size", &roundSize, fileCfg.Quiz.RoundSize)
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	if roundSize == 0 {
		roundSize = defaultRoundSize
	}

	cfg := model.Config{
		CatalogPath: catalogPath,
		Group:       model.GroupID(group),
		Lang:        lang,
		Namespace:   namespace,
		RoundSize:   roundSize,
		DBPath:      dbPath,
		LogMode:     logMode,
	}
	return cfg, validateConfig(cfg)
}

func validateConfig(cfg model.Config) error {
	if cfg.RoundSize <= 0 {
		return fmt.Errorf("--round-size must be > 0")
	}
	if cfg.Namespace == "" {
		return fmt.Errorf("--namespace must not be empty")
	}
	if cfg.Lang != "" {
		if _, err := language.Parse(cfg.Lang); err != nil {
			return fmt.Errorf("--lang: %w", err)
		}
	}
	switch cfg.LogMode {
	case "prod", "production", "dev", "development":
	default:
		return fmt.Errorf("--log-mode must be prod or dev")
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
