package main

import (
	"github.com/urfave/cli/v3"
)

func getCommands(version string) []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSessionCommands()...)
	cmds = append(cmds, getConfigCommands()...)
	cmds = append(cmds, getKeyCommands()...)
	cmds = append(cmds, getSystemCommands(version)...)
	return cmds
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}
