package cli

import (
	"fmt"

	"confmigrate/internal/config"

	"github.com/spf13/cobra"
)

// NewMigrateCmd creates and configures the "migrate" sub-command.
func NewMigrateCmd() *cobra.Command {
	opts := &config.Options{}

	cmd := &cobra.Command{
		Use:   "migrate [target-uri] [source-uri]",
		Short: "Run the full migration into the target database",
		Long: fmt.Sprintf(`Run the full migration. The positional arguments are the PostgreSQL
connection URI of the target database and the URI of the legacy store
(mongodb:// for a served dump, file:// for a directory of JSONL dumps).
Either may instead come from the %s and %s environment variables.`,
			config.EnvTargetURI, config.EnvSourceURI),
		Args: cobra.MaximumNArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.TargetURI = args[0]
			}
			if len(args) > 1 {
				opts.SourceURI = args[1]
			}
			return runMigration(c.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.RBSourceURI, "rb-source-uri", "", "URI of the room-booking store; bookings are skipped when unset")
	cmd.Flags().IntVar(&opts.SystemUserID, "system-user-id", -1, "ID of an existing user to mark as the system user (a new one is created when unset)")
	cmd.Flags().StringVar(&opts.DefaultEmail, "default-email", "", "Fallback address for users with a missing or invalid e-mail (required)")
	cmd.Flags().StringVar(&opts.LDAPProviderName, "ldap-provider-name", "ldap", "Provider name recorded for migrated LDAP identities")
	cmd.Flags().StringVar(&opts.DefaultGroupProvider, "default-group-provider", "ldap", "Provider name recorded for external groups")
	cmd.Flags().BoolVar(&opts.IgnoreLocalAccounts, "ignore-local-accounts", false, "Do not migrate local username/password identities")

	cmd.Flags().StringArrayVar(&opts.ArchiveDirs, "archive-dir", nil, "Legacy archive directory, tried in order (repeatable, at least one required)")
	cmd.Flags().StringVar(&opts.StorageBackend, "storage-backend", "", "Storage backend ID recorded for migrated files (required)")
	cmd.Flags().BoolVar(&opts.AvoidStorageCheck, "avoid-storage-check", false, "Skip size/checksum verification of archive files (requires exactly one archive dir)")
	cmd.Flags().StringVar(&opts.SymlinkBackend, "symlink-backend", "", "Storage backend ID recorded for symlinked files with undecodable paths")
	cmd.Flags().StringVar(&opts.SymlinkTarget, "symlink-target", "", "Directory where symlinks for undecodable paths are created")
	cmd.Flags().StringVar(&opts.PhotoPath, "photo-path", "", "Directory holding legacy room photos")

	cmd.Flags().StringArrayVar(&opts.ReferenceTypes, "reference-type", nil, "External reference system to register, e.g. a report-number scheme (repeatable)")
	cmd.Flags().StringVar(&opts.DefaultCurrency, "default-currency", "", "Currency set in the payment settings (required)")
	cmd.Flags().BoolVar(&opts.MigrateBrokenEvents, "migrate-broken-events", false, "Put events with a missing category into a Lost & Found category instead of skipping them")
	cmd.Flags().IntVarP(&opts.BatchSize, "batch-size", "b", 1000, "Records between progress reports in the bulk steps")

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "Debug logging with source positions")
	cmd.Flags().StringVar(&opts.SaveRestorePath, "save-restore", "", "Write a restore file to this path when the migration fails")
	cmd.Flags().StringVar(&opts.RestorePath, "restore-file", "", "Resume from a restore file written by a previous failed run")

	cmd.MarkFlagRequired("default-email")
	cmd.MarkFlagRequired("archive-dir")
	cmd.MarkFlagRequired("storage-backend")
	cmd.MarkFlagRequired("default-currency")

	return cmd
}
