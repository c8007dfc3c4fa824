package model

// VersionInfo contains version information for the application and its schema.
type VersionInfo struct {
	AppVersion      string `json:"app_version"`
	DbVersion       int64  `json:"db_version"`
	MigrationNeeded bool   `json:"migration_needed"`
}
