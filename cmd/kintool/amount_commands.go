package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/kinlabs/kin-go/kin"
)

func amountToQuarksCommand() *cli.Command {
	return &cli.Command{
		Name:      "to-quarks",
		Usage:     "Convert a Kin amount to quarks (truncating sub-quark precision)",
		ArgsUsage: "KIN_AMOUNT",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("kin amount is required")
			}

			quarks, err := kin.KinToQuarks(c.Args().Get(0))
			if err != nil {
				return err
			}

			fmt.Println(quarks)
			return nil
		},
	}
}

func amountToKinCommand() *cli.Command {
	return &cli.Command{
		Name:      "to-kin",
		Usage:     "Convert a quark amount to Kin",
		ArgsUsage: "QUARKS",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("quark amount is required")
			}

			quarks, err := strconv.ParseInt(c.Args().Get(0), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid quark amount: %w", err)
			}

			fmt.Println(kin.QuarksToKin(quarks))
			return nil
		},
	}
}
