package clicmds

import "github.com/urfave/cli/v2"

// Commands of the elemk cli
func Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:    "find",
			Aliases: []string{"f"},
			Usage:   "create one component over every match",
			Action:  Find,
			Flags:   FindFlags(),
		},
		{
			Name:    "findall",
			Aliases: []string{"fa"},
			Usage:   "create one component per match",
			Action:  FindAll,
			Flags:   FindFlags(),
		},
	}
}
