package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	NoColor bool             `help:"Disable colour output"`

	Play     PlayCmd     `cmd:"" help:"Play an interactive table against the house dealer"`
	Simulate SimulateCmd `cmd:"" help:"Simulate hands and report aggregate results"`
	Odds     OddsCmd     `cmd:"" help:"Estimate equity for a dealt hand"`
	Rules    RulesCmd    `cmd:"" help:"Show the active table and house rules"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokdeng"),
		kong.Description("Pok Deng rules engine, dealer simulator and interactive table"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
