// Package cmd implements the command-line interface of echoprobe.
//
// The package is organized into several subpackages:
//
//   - run: The verification loop (also executed when no command is given)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See echoprobe -help for a list of all commands.
package cmd
