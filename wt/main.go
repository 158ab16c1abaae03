package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/khlim/wealthtrack/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// .env is optional; it typically carries GEMINI_API_KEY
	godotenv.Load()

	// shell completion of subcommand names, before flag parsing
	sub := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{}
	}
	completion := &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"f": predict.Files("*.json"),
		},
	}
	completion.Complete("wt")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
