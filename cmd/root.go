package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emmeril/assets/internal/core/logger"
	"github.com/emmeril/assets/internal/storage"
	"github.com/emmeril/assets/pkg/models"
)

// InitStoreCmd creates the data directory and normalizes both collection
// files, pruning records that fail the shape check. The server performs the
// same pass on boot; this command exists for running it standalone.
var InitStoreCmd = &cobra.Command{
	Use:   "init-store",
	Short: "Create the data directory and normalize the collection files.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dataDir, _ := cmd.Flags().GetString("dir")
		log := logger.NewLogger()
		defer log.Sync()

		categories := storage.New(filepath.Join(dataDir, "categories.json"), models.Category.IsValid, log)
		assets := storage.New(filepath.Join(dataDir, "assets.json"), models.Asset.IsValid, log)

		if err := categories.Normalize(); err != nil {
			return fmt.Errorf("normalize categories: %w", err)
		}
		if err := assets.Normalize(); err != nil {
			return fmt.Errorf("normalize assets: %w", err)
		}

		log.Info("data store initialized", zap.String("dir", dataDir))
		return nil
	},
}

func Execute(ctx context.Context) {
	rootCmd := &cobra.Command{
		Use:   "assets",
		Short: "Inventory asset tracking service",
	}
	InitStoreCmd.Flags().String("dir", "database", "Directory containing the collection files")
	rootCmd.AddCommand(InitStoreCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
