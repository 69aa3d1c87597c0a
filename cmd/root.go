package cmd

import (
	"context"
	"fmt"
	"os"

	"blogsmith/config"
	"blogsmith/internal/article/repository"
	"blogsmith/internal/article/service"
	"blogsmith/internal/generator"
	"blogsmith/pkg/logger"

	"github.com/spf13/cobra"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "blogsmith",
	Short: "Generate, store and browse blog articles",
	Long: `blogsmith turns a topic into a complete blog article using a hosted
text-generation model, stores it, and serves the collection over a JSON API,
a web UI and a websocket event feed.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(statsCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runtime is the wired service shared by every command.
type runtime struct {
	cfg  config.Config
	repo repository.Repository
	svc  *service.ArticleService
}

func (r *runtime) Close() {
	if err := r.repo.Close(); err != nil {
		logger.Sugar.Errorf("Error closing store: %v", err)
	}
	logger.Sync()
}

func openRuntime(ctx context.Context, notify service.Notifier) (*runtime, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Init(cfg.Log.Level)

	repo, err := repository.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Store.Driver, err)
	}

	gen, err := generator.New(ctx, cfg.GeneratorOptions())
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("configuring generator: %w", err)
	}

	return &runtime{
		cfg:  cfg,
		repo: repo,
		svc:  service.NewArticleService(repo, gen, notify),
	}, nil
}
