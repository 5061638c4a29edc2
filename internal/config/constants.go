package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the offline store
	DefaultDatabasePath = "./lingreader.db"
)
