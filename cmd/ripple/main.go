package main

import (
	"os"
	"runtime"

	"github.com/Tap30/ripple-analytics/internal/cmd"
	"github.com/mitchellh/cli"
)

var version = "0.1.0"

func main() {
	c := &cli.CLI{
		Name:    "ripple",
		Version: version,
		Args:    os.Args[1:],
	}

	ui := &cli.ColoredUi{
		ErrorColor: cli.UiColorRed,
		WarnColor:  cli.UiColorYellow,
		Ui: &cli.BasicUi{
			Writer:      os.Stdout,
			Reader:      os.Stdin,
			ErrorWriter: os.Stderr,
		},
	}

	c.Commands = map[string]cli.CommandFactory{
		"log": func() (cli.Command, error) {
			return &cmd.LogCommand{
				Ui: ui,
			}, nil
		},
		"collect": func() (cli.Command, error) {
			return &cmd.CollectCommand{
				Ui: ui,
			}, nil
		},
		"version": func() (cli.Command, error) {
			return &cmd.VersionCommand{
				Ui:      ui,
				Version: version,
				BuildInfo: &cmd.BuildInfo{
					GoVersion: runtime.Version(),
					GoOS:      runtime.GOOS,
					GoArch:    runtime.GOARCH,
				},
			}, nil
		},
	}

	exitStatus, err := c.Run()
	if err != nil {
		ui.Error("Error: " + err.Error())
	}

	os.Exit(exitStatus)
}
