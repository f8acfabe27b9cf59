// Package cli is responsible for parsing command-line arguments, merging
// them with the optional fmlgen.yaml file and FMLGEN_* environment
// variables, and handling process-level concerns like exit codes. It
// translates all of that into the application's internal configuration.
package cli
