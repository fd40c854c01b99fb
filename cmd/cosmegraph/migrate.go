package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmegraph/cosmegraph/internal/catalog"
	"github.com/cosmegraph/cosmegraph/internal/config"
	"github.com/cosmegraph/cosmegraph/internal/database/sqlite"
	"github.com/cosmegraph/cosmegraph/internal/logger"
)

func newMigrateCoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate-core",
		Short: "Copy efficacies, skin types, master ingredients and their links into the graph",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromViper(a.v)
			if err := cfg.ValidateCatalog(); err != nil {
				return err
			}
			return RunMigrateCore(cmd.Context(), cfg, a.log)
		},
	}
}

// RunMigrateCore copies the master catalog into Neo4j. Re-running it merges
// onto the existing nodes.
func RunMigrateCore(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	log = logger.OrNop(log).With("component", "migrate-core")

	store, err := sqlite.OpenCatalog(ctx, cfg.MasterDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	cat, err := catalog.Load(ctx, store)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	log.Info("catalog loaded",
		"ingredients", len(cat.Ingredients),
		"efficacies", len(cat.Efficacies),
		"skin_types", len(cat.SkinTypes),
		"efficacy_links", len(cat.EfficacyLinks),
		"interactions", len(cat.Interactions),
	)

	client, err := connectNeo4j(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeNeo4j(client, log)

	if err := client.EnsureSchema(ctx); err != nil {
		return err
	}
	res, err := client.UpsertCatalog(ctx, cat)
	if err != nil {
		return err
	}
	log.Info("catalog copied",
		"nodes_created", res.NodesCreated,
		"relationships_created", res.RelationshipsCreated,
	)
	return nil
}
