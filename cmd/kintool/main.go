package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	// Version information (set via ldflags during build)
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	app := &cli.App{
		Name:  "kintool",
		Usage: "Kin transaction inspection CLI",
		Description: `A command-line tool for inspecting Kin transactions and memos.

Use this CLI to decode binary memos, convert between Kin and quarks, and
decode transaction history records into their unified payment view.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Commands: []*cli.Command{
			{
				Name:  "memo",
				Usage: "Binary memo commands",
				Subcommands: []*cli.Command{
					memoEncodeCommand(),
					memoDecodeCommand(),
				},
			},
			{
				Name:  "amount",
				Usage: "Kin/quark conversion commands",
				Subcommands: []*cli.Command{
					amountToQuarksCommand(),
					amountToKinCommand(),
				},
			},
			{
				Name:  "tx",
				Usage: "Transaction decoding commands",
				Subcommands: []*cli.Command{
					txDecodeCommand(),
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
