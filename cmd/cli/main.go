package main

import (
	"fmt"
	"os"

	"github.com/enescakir/emoji"
	"github.com/gimlet-io/rocketchat-notifier/pkg/commands/notify"
	"github.com/gimlet-io/rocketchat-notifier/pkg/version"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:                 "rocketchat-notifier",
		Version:              version.String(),
		Usage:                "notifies Rocket.Chat about CI build results",
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			&notify.Command,
		},
	}
	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", emoji.CrossMark, err.Error())
		os.Exit(1)
	}
}
