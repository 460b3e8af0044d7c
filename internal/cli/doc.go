// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It layers
// flags over GRIDSNAP_* environment variables and translates the result into
// the application's internal configuration.
package cli
