// Package app contains the application wiring of kcjoin: logger setup,
// profile merging, invoking the domain operation and reporting its outcome,
// decoupled from the command-line entrypoint.
package app
