package envvar

const (
	// CkmirrorEnv is the environment variable used to determine the environment
	CkmirrorEnv = "CKMIRROR_ENV"

	// CkmirrorConfigPath is the environment variable used to override the config directory
	CkmirrorConfigPath = "CKMIRROR_CONFIG_PATH"

	// CkmirrorDataPath is the environment variable used to override the fetched checkpoint directory
	CkmirrorDataPath = "CKMIRROR_DATA_PATH"
)
