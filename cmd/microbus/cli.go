package main

import (
	"github.com/spf13/cobra"
)

// commandType names which subcommand was selected.
type commandType int

const (
	commandRun commandType = iota
	commandInspect
	commandVersion
)

// options holds the parsed command-line arguments, built by parseArgs.
type options struct {
	Type       commandType
	ConfigPath string
	Profile    string
}

// parseArgs parses args into options using a cobra command tree: a root
// command plus run/inspect/version subcommands, each mutating a shared
// options value through its Run closure.
func parseArgs(args []string) (*options, error) {
	result := &options{Type: commandRun}

	var profileOverride string

	root := &cobra.Command{
		Use:           "microbus",
		Short:         "A typed in-process fanout message bus demo application",
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = commandRun
		},
	}

	root.PersistentFlags().StringVar(&result.ConfigPath, "config", "microbus.yaml", "path to the framework config file")

	runCmd := &cobra.Command{
		Use:     "run",
		Aliases: []string{"r"},
		Short:   "Start the application and run until interrupted",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = commandRun
			result.Profile = profileOverride
		},
	}
	runCmd.Flags().StringVar(&profileOverride, "profile", "", "component name glob filter, overriding the config file's profile")

	inspectCmd := &cobra.Command{
		Use:     "inspect",
		Aliases: []string{"i"},
		Short:   "Start the application and attach a live lifecycle-event TUI",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = commandInspect
			result.Profile = profileOverride
		},
	}
	inspectCmd.Flags().StringVar(&profileOverride, "profile", "", "component name glob filter, overriding the config file's profile")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = commandVersion
		},
	}

	root.AddCommand(runCmd, inspectCmd, versionCmd)

	// cobra falls back to os.Args when given a nil slice; parse args only.
	if args == nil {
		args = []string{}
	}

	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		return nil, err
	}

	return result, nil
}
