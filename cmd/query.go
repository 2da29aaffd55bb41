package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/audit"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/db"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/nlp"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/tickets"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/users"
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Run a one-off natural-language ticket query",
	Long:  `Runs a single query through the pipeline against the local database and prints the rendered response.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().String("user", "", "user id to run the query as (required)")
	queryCmd.Flags().Bool("admin", false, "use the admin-trusted entry point")
	queryCmd.Flags().Bool("json", false, "output the full response as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	queryText := args[0]

	userID, _ := cmd.Flags().GetString("user")
	asAdmin, _ := cmd.Flags().GetBool("admin")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if userID == "" {
		return fmt.Errorf("--user is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	svc := nlp.NewService(
		tickets.NewStore(database),
		users.NewStore(database),
		audit.NewStore(database),
		nlp.ServiceConfig{
			ConfidenceThreshold: cfg.ConfidenceThreshold,
			Preferences: nlp.NewPreferencesBuilder().
				Style(nlp.Style(cfg.ResponseStyle)).
				Emoji(cfg.EmojiEnabled).
				Verbose(cfg.VerboseResponses).
				MaxResponseLength(cfg.MaxResponseLength).
				Build(),
		},
	)

	var resp *nlp.NLPResponse
	if asAdmin {
		resp = svc.ProcessAdminQuery(ctx, userID, queryText)
	} else {
		resp = svc.ProcessQuery(ctx, userID, queryText)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Println(resp.Message)
	if !resp.Success {
		os.Exit(1)
	}
	return nil
}
