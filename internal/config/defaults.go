package config

const (
	defaultJobDir                = "."
	defaultPollIntervalMillis    = 250
	defaultRecheckIntervalMillis = 1000
	defaultChunkSize             = 8192
	defaultLockMethod            = LockMethodDescriptor
	defaultMarker                = ","
	defaultLogFormat             = "console"
	defaultLogLevel              = "warn"

	maxChunkSize = 1 << 20
)

// Wait modes.
const (
	WaitModeEvent = "event"
	WaitModePoll  = "poll"
)

// Lock probe backends.
const (
	LockMethodDescriptor = "descriptor"
	LockMethodPath       = "path"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			JobDir: defaultJobDir,
		},
		Follow: Follow{
			WaitMode:              defaultWaitMode,
			PollIntervalMillis:    defaultPollIntervalMillis,
			RecheckIntervalMillis: defaultRecheckIntervalMillis,
			ChunkSize:             defaultChunkSize,
			LockMethod:            defaultLockMethod,
			Marker:                defaultMarker,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
