// Package cli is responsible for parsing command-line arguments and handling
// process-level concerns like exit codes. It translates the lenient kcjoin
// flag grammar into the application's configuration.
package cli
