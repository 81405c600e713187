// Package main is the tedflare CLI: content-based TED talk recommendations.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rushteam/tedflare/catalog"
	"github.com/rushteam/tedflare/config"
	_ "github.com/rushteam/tedflare/config/builders"
	"github.com/rushteam/tedflare/core"
	"github.com/rushteam/tedflare/engine"
	"github.com/rushteam/tedflare/feature"
	"github.com/rushteam/tedflare/filter"
	"github.com/rushteam/tedflare/interaction"
	"github.com/rushteam/tedflare/pipeline"
	"github.com/rushteam/tedflare/pkg/utils"
	"github.com/rushteam/tedflare/store"
)

var version = "dev"

var (
	configPath  string
	catalogPath string
	debug       bool
	topK        int
	talkID      int64
	userID      string
	interacted  []int64
	excluded    []int64
)

// app bundles everything a command needs; close releases the store and flushes the logger.
type app struct {
	cfg     *config.App
	logger  *zap.Logger
	kv      core.KeyValueStore
	users   *interaction.Store
	engine  *engine.Engine
	catalog *catalog.Catalog
}

func (a *app) close() {
	if a.kv != nil {
		_ = a.kv.Close()
	}
	_ = a.logger.Sync()
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "tedflare",
		Short:         "Content-based TED talk recommendations",
		Long:          "tedflare recommends TED talks using TF-IDF similarity over talk tags and your viewing history",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "talk catalog CSV (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	similarCmd := &cobra.Command{
		Use:   "similar",
		Short: "Talks similar to a given talk",
		RunE:  runSimilar,
	}
	similarCmd.Flags().Int64Var(&talkID, "id", -1, "talk id")
	similarCmd.Flags().IntVarP(&topK, "top", "k", 0, "number of results (default from config)")
	_ = similarCmd.MarkFlagRequired("id")

	searchCmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search talks by free text",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSearch,
	}
	searchCmd.Flags().IntVarP(&topK, "top", "k", 0, "number of results (default from config)")

	recommendCmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend from an explicit set of interacted talks",
		RunE:  runRecommend,
	}
	recommendCmd.Flags().Int64SliceVar(&interacted, "interacted", nil, "interacted talk ids")
	recommendCmd.Flags().Int64SliceVar(&excluded, "exclude", nil, "talk ids to exclude")
	recommendCmd.Flags().IntVarP(&topK, "top", "k", 0, "number of results (default from config)")

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Recommend for a user based on liked and watched talks",
		RunE:  runProfile,
	}
	profileCmd.Flags().StringVarP(&userID, "user", "u", "", "user id")
	profileCmd.Flags().IntVarP(&topK, "top", "k", 0, "number of results (default from config)")
	_ = profileCmd.MarkFlagRequired("user")

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show a user's liked, watched and saved talks",
		RunE:  runHistory,
	}
	historyCmd.Flags().StringVarP(&userID, "user", "u", "", "user id")
	_ = historyCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(similarCmd, searchCmd, recommendCmd, profileCmd, historyCmd)

	for _, action := range []struct {
		use, short string
		apply      func(*interaction.Store, context.Context, string, int64) error
	}{
		{"like", "Like a talk", (*interaction.Store).Like},
		{"unlike", "Remove a like", (*interaction.Store).Unlike},
		{"watch", "Mark a talk as watched", (*interaction.Store).Watch},
		{"save", "Save a talk for later", (*interaction.Store).Save},
		{"unsave", "Remove a saved talk", (*interaction.Store).Unsave},
	} {
		apply := action.apply
		use := action.use
		cmd := &cobra.Command{
			Use:   use,
			Short: action.short,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runInteraction(cmd.Context(), use, apply)
			},
		}
		cmd.Flags().StringVarP(&userID, "user", "u", "", "user id")
		cmd.Flags().Int64Var(&talkID, "id", -1, "talk id")
		_ = cmd.MarkFlagRequired("user")
		_ = cmd.MarkFlagRequired("id")
		rootCmd.AddCommand(cmd)
	}

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		color.Red("Error: %s", describeError(err))
		os.Exit(1)
	}
}

func loadApp(ctx context.Context) (*app, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}

	logger, err := utils.NewLogger(cfg.Debug || debug)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	a := &app{cfg: cfg, logger: logger}

	a.catalog, err = catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		a.close()
		return nil, err
	}

	a.kv, err = store.Open(ctx, store.Options{
		Backend:  cfg.Store.Backend,
		Addr:     cfg.Store.Addr,
		Password: cfg.Store.Password,
		DB:       cfg.Store.DB,
	})
	if err != nil {
		a.close()
		return nil, err
	}
	a.users = interaction.NewStore(a.kv, cfg.Store.KeyPrefix, logger)

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithTopK(cfg.DefaultTopK()),
		engine.WithTokenizer(feature.NewTokenizer(cfg.DefaultMinTokenLength(), cfg.Recommend.ExtraStopWords...)),
		engine.WithInteractionReader(a.users),
	}
	if key := cfg.Recommend.BlacklistKey; key != "" {
		opts = append(opts, engine.WithExtraFilters(filter.NewBlacklistFilter(nil, filter.NewStoreAdapter(a.kv), key)))
	}
	for mode, path := range map[engine.Mode]string{
		engine.ModeSimilar: cfg.Pipelines.Similar,
		engine.ModeProfile: cfg.Pipelines.Profile,
		engine.ModeSearch:  cfg.Pipelines.Search,
	} {
		if path == "" {
			continue
		}
		p, err := loadPipeline(path)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("%s pipeline: %w", mode, err)
		}
		logger.Debug("custom pipeline loaded", zap.String("mode", string(mode)), zap.Strings("nodes", p.Names()))
		opts = append(opts, engine.WithPipeline(mode, p))
	}

	a.engine, err = engine.New(a.catalog, opts...)
	if err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func loadPipeline(path string) (*pipeline.Pipeline, error) {
	pc, err := pipeline.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := config.ValidatePipelineConfig(pc); err != nil {
		return nil, err
	}
	return pc.BuildPipeline(config.DefaultFactory())
}

func runSimilar(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	seed, ok := a.catalog.Talk(talkID)
	if ok {
		color.Cyan("Because you picked: %s", seed.Title)
	}
	recs, err := a.engine.RecommendSimilarTo(cmd.Context(), talkID, topK)
	if err != nil {
		return err
	}
	printRecommendations(recs)
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	recs, err := a.engine.Search(cmd.Context(), strings.Join(args, " "), topK)
	if err != nil {
		return err
	}
	printRecommendations(recs)
	return nil
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	recs, err := a.engine.RecommendForProfile(cmd.Context(), interacted, excluded, topK)
	if err != nil {
		return err
	}
	printRecommendations(recs)
	return nil
}

func runProfile(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	recs, err := a.engine.RecommendForUser(cmd.Context(), userID, topK)
	if err != nil {
		return err
	}
	printRecommendations(recs)
	return nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	set, err := a.users.Get(cmd.Context(), userID)
	if err != nil {
		return err
	}
	printSection(a.catalog, "Liked", core.SortedIDs(set.Liked))
	printSection(a.catalog, "Watched", core.SortedIDs(set.Watched))
	printSection(a.catalog, "Saved", core.SortedIDs(set.Saved))
	return nil
}

func runInteraction(ctx context.Context, action string, apply func(*interaction.Store, context.Context, string, int64) error) error {
	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	talk, ok := a.catalog.Talk(talkID)
	if !ok {
		return core.NewUnknownItemError(talkID)
	}
	if err := apply(a.users, ctx, userID, talkID); err != nil {
		return err
	}
	if a.cfg.Store.Backend == "memory" {
		color.Yellow("Note: the memory store does not persist between runs; configure store.backend: redis")
	}
	color.Green("%s: %s", action, talk.Title)
	return nil
}

func printRecommendations(recs []core.Recommendation) {
	if len(recs) == 0 {
		color.Yellow("No recommendations found.")
		return
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	for i, r := range recs {
		bold.Printf("%d. [%d] %s\n", i+1, r.ID, r.Title)
		faint.Printf("   %s  (score %.4f)\n", r.URL, r.Score)
	}
}

func printSection(c *catalog.Catalog, name string, ids []int64) {
	color.Cyan("%s (%d)", name, len(ids))
	for _, id := range ids {
		if talk, ok := c.Talk(id); ok {
			fmt.Printf("  [%d] %s\n", id, talk.Title)
		}
	}
}

func describeError(err error) string {
	switch {
	case core.IsEmptyInteraction(err):
		return "not enough history yet: like or watch a few talks first"
	case core.IsUnknownItem(err):
		return err.Error()
	case core.IsEmptyCatalog(err):
		return "the talk catalog is empty"
	case errors.Is(err, os.ErrNotExist):
		return fmt.Sprintf("%v (set --catalog or catalog.path in the config)", err)
	default:
		return err.Error()
	}
}
