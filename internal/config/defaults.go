package config

const (
	defaultAPIBaseURL           = "http://10.23.8.215:5000/api/v1/sql-portal"
	defaultAPITimeoutSeconds    = 30
	defaultAPIBatchSize         = 10
	defaultOutputFile           = "raw_timestamps.csv"
	defaultInputFile            = "numbers.csv"
	defaultSourceUTCOffsetHours = 8
	defaultDisplayOffsetHours   = 4
	defaultCacheDir             = "~/.cache/tracktoo"
	defaultCacheTTLHours        = 24
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			BaseURL:        defaultAPIBaseURL,
			TimeoutSeconds: defaultAPITimeoutSeconds,
			BatchSize:      defaultAPIBatchSize,
		},
		Export: Export{
			OutputFile:           defaultOutputFile,
			InputFile:            defaultInputFile,
			SourceUTCOffsetHours: defaultSourceUTCOffsetHours,
			DisplayOffsetHours:   defaultDisplayOffsetHours,
		},
		Cache: Cache{
			Dir:      defaultCacheDir,
			TTLHours: defaultCacheTTLHours,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
