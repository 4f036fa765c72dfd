package main

import (
	"flag"
	"os"

	"github.com/idilsaglam/foodie/internal/cli"
	"github.com/idilsaglam/foodie/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	envFile := flag.String("env", "", "load environment from this file (default .env)")
	theme := flag.String("theme", "classic", "color theme: classic, neon or mono")
	flag.Parse()

	ui.SetTheme(*theme)

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	os.Exit(cli.Run(args, cli.Options{EnvFile: *envFile}))
}
