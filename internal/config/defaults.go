package config

const (
	defaultOutputDir         = "~/transcripts"
	defaultHistoryDB         = "~/.local/share/ytpy/history.db"
	defaultWorkDir           = "~/.cache/ytpy"
	defaultWorkers           = 1
	defaultRetryAttempts     = 3
	defaultRetryDelaySeconds = 2
	defaultYtDlpBinary       = "yt-dlp"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			HistoryDB: defaultHistoryDB,
			WorkDir:   defaultWorkDir,
		},
		YouTube: YouTube{
			Languages: []string{"en"},
		},
		Fetch: Fetch{
			Workers:           defaultWorkers,
			RetryAttempts:     defaultRetryAttempts,
			RetryDelaySeconds: defaultRetryDelaySeconds,
			YtDlpEnabled:      true,
			YtDlpBinary:       defaultYtDlpBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
