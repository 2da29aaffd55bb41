package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/audit"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/db"
	mcpserver "github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/mcp"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/nlp"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/tickets"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/users"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the break-glass query pipeline as tools for AI agents like Claude Code.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := db.Open(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		ticketStore := tickets.NewStore(database)
		svc := nlp.NewService(
			ticketStore,
			users.NewStore(database),
			audit.NewStore(database),
			nlp.ServiceConfig{ConfidenceThreshold: cfg.ConfidenceThreshold},
		)

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "firefighter MCP server started on stdio (db=%s)\n", cfg.DatabasePath)

		srv := mcpserver.NewServer(svc, ticketStore)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
