package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command.
type Globals struct {
	Config   string `short:"c" default:"perudo.hcl" type:"path" help:"HCL config file (defaults apply if missing)"`
	LogLevel string `help:"Log level (debug|info|warn|error), overrides the config file"`
	Debug    bool   `help:"Shorthand for --log-level=debug"`
}

type CLI struct {
	Globals

	Version     kong.VersionFlag `short:"v" help:"Show version"`
	Play        PlayCmd          `cmd:"" help:"Play one game and print every round"`
	Simulate    SimulateCmd      `cmd:"" help:"Play many games in parallel and print statistics"`
	ValidateBet ValidateBetCmd   `cmd:"validate-bet" help:"Check whether a bet may follow another"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("perudo"),
		kong.Description("Perudo (Liar's Dice) rules engine with pluggable bots"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
