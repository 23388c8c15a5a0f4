// Package cli handles the command-line interface logic
// using the Cobra library.
package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "confmigrate",
		Short: "confmigrate - one-shot migration of a legacy conference database into PostgreSQL",
		Long: `confmigrate reads a dump of the legacy conference-management object
database and loads it into a normalized PostgreSQL schema, copying attachment
files out of the legacy archive along the way.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.AddCommand(NewMigrateCmd())

	return rootCmd
}
