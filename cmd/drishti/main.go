package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "drishti",
		Usage: "Missing person reporting backend",
		Commands: []*cli.Command{
			serveCommand,
			migrateCommand,
			seedCommand,
			userAddCommand,
			nanoidCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}
