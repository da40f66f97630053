package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/navigatorx-core/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-core/pkg/logger"
	"github.com/lintang-b-s/navigatorx-core/pkg/preprocessor"
	"github.com/lintang-b-s/navigatorx-core/pkg/util"
	"github.com/lintang-b-s/navigatorx-core/pkg/vehicle"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configPath string

	rootCmd = &cobra.Command{
		Use:   "coreselector",
		Short: "Marks the edges with turn restrictions that must stay in the uncontracted core",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return util.ReadConfig(configPath)
		},
		RunE: run,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./data/", "directory containing config.yaml")
	rootCmd.Flags().String("graph", "", "graph file (bzip2)")
	rootCmd.Flags().String("out", "", "output file for the core edge ids (bzip2)")
	rootCmd.Flags().String("vehicle", "", "vehicle profile [car|bike]")
	rootCmd.Flags().Int("workers", 0, "number of workers")
	rootCmd.Flags().String("log-level", "", "log level [debug|info|warn|error]")

	for key, flag := range map[string]string{
		"graph_file": "graph",
		"core_file":  "out",
		"vehicle":    "vehicle",
		"workers":    "workers",
		"log_level":  "log-level",
	} {
		if err := viper.BindPFlag(key, rootCmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := util.LoadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	encoder, err := vehicle.NewEncoderByName(cfg.Vehicle, cfg.MaxTurnCost)
	if err != nil {
		return err
	}
	em, err := vehicle.NewEncodingManager(encoder)
	if err != nil {
		return err
	}
	for _, enc := range em.GetEncoders() {
		log.Info("flag encoder registered", zap.String("vehicle", enc.Name()),
			zap.Int("maxTurnCost", cfg.MaxTurnCost))
	}

	log.Info("Reading graph from ", zap.String("graphFilePath", cfg.GraphFile))
	graphStorage, err := datastructure.ReadGraphStorage(cfg.GraphFile)
	if err != nil {
		return fmt.Errorf("reading graph %s: %w", cfg.GraphFile, err)
	}
	turnCosts, _ := graphStorage.TurnCostExtension()
	log.Info("graph loaded",
		zap.Int("vertices", graphStorage.GetGraph().NumberOfVertices()),
		zap.Int("edges", graphStorage.GetGraph().NumberOfEdges()),
		zap.Int("shortcuts", graphStorage.GetGraph().NumberOfShortcuts()),
		zap.Int("turnCosts", turnCosts.Len()))

	selector := preprocessor.NewCoreSelector(graphStorage, encoder, log, cfg.Workers)
	selection, err := selector.SelectCore(ctx)
	if err != nil {
		return err
	}

	if err = selection.WriteCoreEdges(cfg.CoreFile); err != nil {
		return fmt.Errorf("writing core edges %s: %w", cfg.CoreFile, err)
	}
	log.Sugar().Infof("Core edges written to %s", cfg.CoreFile)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
