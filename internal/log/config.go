package log

// DefaultConfig returns the logging configuration used by both the
// dispatcher and worker CLIs when no overriding flag is given.
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Pattern: "%time [%level] %msg\n",
		Time:    "2006-01-02T15:04:05.000Z07:00",
		Level:   "info",
	}
}
