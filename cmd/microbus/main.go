// Command microbus is the demo application exercising the bus, component
// and app packages against a registry of example components, as a thin
// entry point delegating into fx.
package main

import (
	"fmt"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	switch opts.Type {
	case commandVersion:
		printVersion()
		return 0
	case commandInspect:
		return runInspect(opts)
	default:
		return runRun(opts)
	}
}
