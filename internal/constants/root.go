package constants

import "time"

const (
	AppName            = "projcal"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/projcal"
	DefaultConfigPath  = "~/.config/projcal/projcal.db"
	DefaultConfigFile  = "~/.config/projcal/config.yaml"
	Version            = "v0.3.0"

	// KeyringConfigValue selects the connection string stored in the OS keyring.
	KeyringConfigValue = "keyring"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is used by the calendar viewer (YYYY-MM)
	MonthFormat = "2006-01"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "projcal-"
	BackupFileSuffix = ".db"

	// MaxConsecutiveHolidays bounds the forward scan for a working day.
	MaxConsecutiveHolidays = 3660

	// API constants
	DefaultListenAddr = ":8080"
	RequestTimeout    = 30 * time.Second
)
