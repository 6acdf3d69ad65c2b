package main

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/kinlabs/kin-go/kin"
)

func memoEncodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "encode",
		Usage: "Encode a binary memo and print it as base64",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  "version",
				Value: 1,
				Usage: "Memo format version",
			},
			&cli.IntFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Value:   int(kin.TransactionTypeNone),
				Usage:   "Transaction type tag (0=none, 1=earn, 2=spend, 3=p2p)",
			},
			&cli.UintFlag{
				Name:    "app-index",
				Aliases: []string{"a"},
				Usage:   "Application index",
			},
			&cli.StringFlag{
				Name:    "foreign-key",
				Aliases: []string{"f"},
				Usage:   "Foreign key as hex (at most 29 bytes)",
			},
		},
		Action: func(c *cli.Context) error {
			fk, err := hex.DecodeString(c.String("foreign-key"))
			if err != nil {
				return fmt.Errorf("invalid foreign key: %w", err)
			}

			memo, err := kin.NewMemo(
				byte(c.Uint("version")),
				kin.TransactionType(c.Int("type")),
				uint16(c.Uint("app-index")),
				fk,
			)
			if err != nil {
				return fmt.Errorf("failed to encode memo: %w", err)
			}

			fmt.Println(base64.StdEncoding.EncodeToString(memo[:]))
			return nil
		},
	}
}

func memoDecodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Decode a base64 binary memo",
		ArgsUsage: "BASE64_MEMO",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("base64 memo is required")
			}

			raw, err := base64.StdEncoding.DecodeString(c.Args().Get(0))
			if err != nil {
				return fmt.Errorf("invalid base64: %w", err)
			}

			memo, err := kin.MemoFromBytes(raw)
			if err != nil {
				return fmt.Errorf("failed to decode memo: %w", err)
			}

			data, _ := json.MarshalIndent(map[string]interface{}{
				"version":     memo.Version(),
				"type":        int(memo.TransactionType()),
				"app_index":   memo.AppIndex(),
				"foreign_key": hex.EncodeToString(memo.ForeignKey()),
			}, "", "  ")
			fmt.Println(string(data))
			return nil
		},
	}
}
