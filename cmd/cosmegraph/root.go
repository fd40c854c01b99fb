package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cosmegraph/cosmegraph/internal/config"
	"github.com/cosmegraph/cosmegraph/internal/logger"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	v   *viper.Viper
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:           "cosmegraph",
		Short:         "Build the cosmetic ingredient graph from the master catalog and the product CSV",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logger.New(a.v.GetString("log.mode"), a.v.GetString("log.level"))
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.String("master-db", "", "path to the SQLite master catalog")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-mode", "development", "log encoding: development or production")
	pf.String("neo4j-uri", "bolt://localhost:7687", "Neo4j connection URI")
	pf.String("neo4j-user", "neo4j", "Neo4j user")
	pf.String("neo4j-database", "", "Neo4j database name (default database when empty)")
	_ = a.v.BindPFlag("master_db", pf.Lookup("master-db"))
	_ = a.v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("log.mode", pf.Lookup("log-mode"))
	_ = a.v.BindPFlag("neo4j.uri", pf.Lookup("neo4j-uri"))
	_ = a.v.BindPFlag("neo4j.user", pf.Lookup("neo4j-user"))
	_ = a.v.BindPFlag("neo4j.database", pf.Lookup("neo4j-database"))

	root.AddCommand(newIngestCmd(a), newMigrateCoreCmd(a))
	return root
}
