package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/solatis/quietrepr/internal/core/db"
	"github.com/solatis/quietrepr/internal/types"
)

var (
	queryFlags  renderFlags
	dbURL       string
	querySQL    string
	queriesFile string
	queryName   string
	recordType  string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Render database rows as records",
	Long: `Runs a query against sqlite:// or postgres:// and renders each row as a
record, fields in column order. Use --sql for inline SQL or --queries with
--name to pick a named query from a .sql file.`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryFlags.register(queryCmd)
	queryCmd.Flags().StringVar(&dbURL, "db-url", "", "database connection URL (sqlite://path or postgres://...)")
	queryCmd.Flags().StringVar(&querySQL, "sql", "", "inline SQL query")
	queryCmd.Flags().StringVar(&queriesFile, "queries", "", "file of named queries (-- name: <query>)")
	queryCmd.Flags().StringVar(&queryName, "name", "", "named query to run from --queries")
	queryCmd.Flags().StringVar(&recordType, "type", "", "record type for rows (empty for untyped)")
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if dbURL == "" {
		return fmt.Errorf("--db-url required")
	}
	if (querySQL == "") == (queriesFile == "") {
		return fmt.Errorf("exactly one of --sql or --queries is required")
	}
	if queriesFile != "" && queryName == "" {
		return fmt.Errorf("--name required with --queries")
	}

	cfg, engine, err := queryFlags.setup(cmd)
	if err != nil {
		return err
	}

	database, err := db.Open(dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	var records []types.Record
	if queriesFile != "" {
		queries, err := db.LoadQueries(queriesFile)
		if err != nil {
			return err
		}
		records, err = queries.Records(ctx, database, queryName, recordType)
		if err != nil {
			return err
		}
	} else {
		records, err = db.Records(ctx, database, recordType, querySQL)
		if err != nil {
			return err
		}
	}

	slog.Debug("Fetched rows", "count", len(records), "type", recordType)
	return renderAll(cmd.OutOrStdout(), engine, cfg.Render.Format, records, queryFlags.perCall(cmd))
}
