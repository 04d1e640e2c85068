package logger

// SetupLogger initializes the default logger from CLI flag values and
// returns it for context attachment.
func SetupLogger(logLevel string, logJSON bool) Logger {
	cfg := &Config{
		Level:      LogLevel(logLevel),
		JSON:       logJSON,
		TimeFormat: "15:04:05",
	}
	Init(cfg)
	return NewLogger(cfg)
}
