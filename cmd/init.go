package cmd

import (
	"github.com/spf13/cobra"

	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize firefighter configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the service and generates a .firefighter.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
