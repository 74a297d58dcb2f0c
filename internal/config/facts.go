package config

// Default configuration values.
const (
	// DefaultGroupBy groups authors by name, matching the CLI default.
	DefaultGroupBy = "name"
	// DefaultLimit of 0 keeps every author row.
	DefaultLimit = 0
	// DefaultProgressEvery of 0 disables progress messages.
	DefaultProgressEvery = 0
	// DefaultIncludeMerges excludes merge commits from enumeration.
	DefaultIncludeMerges = false
	// DefaultLogLevel is empty: verbosity flags decide, warn otherwise.
	DefaultLogLevel = ""
	// DefaultVerbose keeps debug output off.
	DefaultVerbose = false
)
