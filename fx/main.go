// Command fx keeps the books of a currency exchange desk.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/forex/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.SetFlags(flag.CommandLine)

	commander := subcommands.NewCommander(flag.CommandLine, "fx")
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	// answers shell completion requests, and exits, when run by the shell.
	cmd.Completion(commander).Complete("fx")

	flag.Parse()

	if name := flag.Arg(0); name != "" && !cmd.Known(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
