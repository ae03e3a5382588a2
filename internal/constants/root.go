package constants

import "time"

const (
	AppName            = "quickhire"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/quickhire/quickhire.db"
	Version            = "v0.3.0"

	// Environment variables
	EnvDBConnection = "QUICKHIRE_DB_CONNECTION"
	EnvCatalogDir   = "QUICKHIRE_CATALOG"
	EnvListenAddr   = "QUICKHIRE_ADDR"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "quickhire-"
	BackupFileSuffix = ".db"

	// Study plan bounds
	MinPlanDays        = 1
	MaxPlanDays        = 10
	DefaultPlanDays    = 5
	DefaultDailyHours  = 2.0
	FallbackDailyHours = 1.0

	// Listing defaults
	DefaultListLimit    = 50
	DefaultUpcomingDays = 30

	// HTTP server
	DefaultListenAddr = ":8080"
	ShutdownTimeout   = 10 * time.Second
	ReadHeaderTimeout = 5 * time.Second
)
