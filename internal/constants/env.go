package constants

const (
	EnvDatabase   = "PROJCAL_DB"
	EnvDebug      = "PROJCAL_DEBUG"
	EnvNoBackup   = "PROJCAL_NO_BACKUP"
	EnvListenAddr = "PROJCAL_ADDR"
)
