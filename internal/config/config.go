// Package config holds the migration options collected from the command
// line and the environment.
package config

import (
	"errors"
	"os"

	"confmigrate/internal/sanitize"
)

// Env fallbacks for the positional URIs, useful with a .env file.
const (
	EnvTargetURI = "CONFMIGRATE_TARGET_URI"
	EnvSourceURI = "CONFMIGRATE_SOURCE_URI"
)

type Options struct {
	TargetURI   string
	SourceURI   string
	RBSourceURI string

	SystemUserID         int // -1 means "create a fresh system user"
	DefaultEmail         string
	LDAPProviderName     string
	DefaultGroupProvider string
	IgnoreLocalAccounts  bool

	ArchiveDirs       []string
	StorageBackend    string
	AvoidStorageCheck bool
	SymlinkBackend    string
	SymlinkTarget     string
	PhotoPath         string

	ReferenceTypes      []string
	DefaultCurrency     string
	MigrateBrokenEvents bool
	BatchSize           int

	Verbose bool
	Debug   bool

	SaveRestorePath string
	RestorePath     string
}

// FromEnv fills the URIs from the environment when they were not given as
// arguments.
func (o *Options) FromEnv() {
	if o.TargetURI == "" {
		o.TargetURI = os.Getenv(EnvTargetURI)
	}
	if o.SourceURI == "" {
		o.SourceURI = os.Getenv(EnvSourceURI)
	}
}

func (o *Options) Validate() error {
	if o.TargetURI == "" || o.SourceURI == "" {
		return errors.New("both the target database URI and the legacy store URI are required")
	}
	if o.DefaultEmail == "" {
		return errors.New("--default-email is required")
	}
	if !sanitize.ValidEmail(o.DefaultEmail) {
		return errors.New("--default-email must be a valid address")
	}
	if len(o.ArchiveDirs) == 0 {
		return errors.New("at least one --archive-dir is required")
	}
	if o.StorageBackend == "" {
		return errors.New("--storage-backend is required")
	}
	if o.DefaultCurrency == "" {
		return errors.New("--default-currency is required")
	}
	if (o.SymlinkTarget != "") != (o.SymlinkBackend != "") {
		return errors.New("both or none of --symlink-target and --symlink-backend must be used")
	}
	if (o.AvoidStorageCheck || o.SymlinkTarget != "") && len(o.ArchiveDirs) != 1 {
		return errors.New("--avoid-storage-check and --symlink-target require exactly one --archive-dir")
	}
	if o.BatchSize < 1 {
		return errors.New("--batch-size must be at least 1")
	}
	return nil
}
