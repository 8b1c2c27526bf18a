package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/ValentinKolb/echoprobe/cmd/run"
	"github.com/ValentinKolb/echoprobe/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "echoprobe",
		Short: "verification client for remote echo components",
		Long: fmt.Sprintf(`echoprobe (v%s)

Looks up a remote echo component over HTTP(S), pins strong affinity
to the endpoint and checks that messages are echoed unchanged.
Without a command, run is executed.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of echoprobe",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "echoprobe v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(run.RunCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	util.SetupGlobalFlags(RootCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	RootCmd.SetArgs(defaultToRun(os.Args[1:]))
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// defaultToRun prepends the run command if args do not start with a command.
// Only the first token is inspected, the root command does not know the flags of run.
func defaultToRun(args []string) []string {
	if slices.Contains(args, "-h") || slices.Contains(args, "--help") {
		return args
	}
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		// a command, or an unknown one that cobra should report
		return args
	}
	return append([]string{run.RunCmd.Name()}, args...)
}
