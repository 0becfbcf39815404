// Package logging builds the log/slog loggers used by the application and the CLI.
// Output is JSON by default; LoggerConfig.Format selects the text handler instead.
package logging
