package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/itchyny/gojq"
	"github.com/urfave/cli/v2"

	"github.com/kinlabs/kin-go/client"
	"github.com/kinlabs/kin-go/kin"
)

func txDecodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Decode a transaction history record into its payment view",
		ArgsUsage: "[RECORD_FILE]",
		Description: `Reads a history-record JSON document from RECORD_FILE (or stdin when no
file is given), decodes the embedded raw transaction, and prints the
resulting payments as JSON.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "jq expression applied to the decoded output",
			},
		},
		Action: func(c *cli.Context) error {
			var (
				raw []byte
				err error
			)
			if c.NArg() > 0 {
				raw, err = os.ReadFile(c.Args().Get(0))
			} else {
				raw, err = io.ReadAll(os.Stdin)
			}
			if err != nil {
				return fmt.Errorf("failed to read record: %w", err)
			}

			data, err := client.ParseRecord(raw)
			if err != nil {
				return fmt.Errorf("failed to decode record: %w", err)
			}

			out := txDataToJSON(data)

			if filter := c.String("filter"); filter != "" {
				return printFiltered(out, filter)
			}

			encoded, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(encoded))
			return nil
		},
	}
}

// txDataToJSON flattens TransactionData into a JSON-friendly shape with
// string addresses and error messages.
func txDataToJSON(data *kin.TransactionData) map[string]interface{} {
	payments := make([]map[string]interface{}, len(data.Payments))
	for i, p := range data.Payments {
		payment := map[string]interface{}{
			"sender":      p.Sender.Base58(),
			"destination": p.Destination.Base58(),
			"type":        int(p.Type),
			"quarks":      p.Quarks,
		}
		if p.Invoice != nil {
			items := make([]map[string]interface{}, len(p.Invoice.Items))
			for j, item := range p.Invoice.Items {
				items[j] = map[string]interface{}{
					"title":       item.Title,
					"description": item.Description,
					"amount":      item.Amount.String(),
				}
			}
			payment["invoice"] = map[string]interface{}{"items": items}
		}
		if p.Memo != "" {
			payment["memo"] = p.Memo
		}
		payments[i] = payment
	}

	out := map[string]interface{}{
		"tx_id":    hex.EncodeToString(data.TxID),
		"state":    data.TxState.String(),
		"payments": payments,
	}

	if data.Errors.TxError != nil {
		out["tx_error"] = data.Errors.TxError.Error()
		out["op_errors"] = errorsToJSON(data.Errors.OpErrors)
		out["payment_errors"] = errorsToJSON(data.Errors.PaymentErrors)
	}

	return out
}

func errorsToJSON(errs []error) []interface{} {
	if errs == nil {
		return nil
	}
	out := make([]interface{}, len(errs))
	for i, err := range errs {
		if err != nil {
			out[i] = err.Error()
		}
	}
	return out
}

// printFiltered runs a compiled jq expression over the decoded output and
// prints every result.
func printFiltered(out map[string]interface{}, filter string) error {
	query, err := gojq.Parse(filter)
	if err != nil {
		return fmt.Errorf("failed to parse jq filter %q: %w", filter, err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return fmt.Errorf("failed to compile jq filter %q: %w", filter, err)
	}

	// Round-trip through JSON so gojq sees plain maps and numbers.
	encoded, err := json.Marshal(out)
	if err != nil {
		return err
	}
	var value interface{}
	if err := json.Unmarshal(encoded, &value); err != nil {
		return err
	}

	iter := code.Run(value)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return fmt.Errorf("jq filter failed: %w", err)
		}
		result, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(result))
	}

	return nil
}
