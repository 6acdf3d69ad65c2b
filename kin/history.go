package kin

import (
	"encoding/base64"
	"fmt"
	"strconv"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
	"github.com/stellar/go/xdr"

	"github.com/kinlabs/kin-go/solana"
)

// PaymentDetails is the sender/destination/amount triple the history
// service reports alongside the raw transaction bytes. The assembler zips
// these against the payment instructions found on chain rather than
// re-deriving them from the raw bytes.
type PaymentDetails struct {
	Sender      PublicKey
	Destination PublicKey
	Quarks      int64
}

// HistoryEntry is one record of the transaction history feed. Exactly one
// of StellarEnvelopeXDR or SolanaTransaction is populated; the assembler
// branches on which field is set, never on content sniffing.
type HistoryEntry struct {
	TxID []byte

	StellarEnvelopeXDR []byte
	SolanaTransaction  []byte

	Payments []PaymentDetails
	Invoices InvoiceList
}

// TxDataFromHistoryEntry assembles the unified transaction view from a
// history record: it decodes the raw transaction with the matching ledger
// codec, extracts the payments, and attaches memo metadata and invoices.
//
// If the entry carries a non-empty invoice list, its length must equal the
// number of payments or assembly fails; partial invoice correlation is
// never attempted.
func TxDataFromHistoryEntry(entry HistoryEntry, state TransactionState) (TransactionData, error) {
	data := TransactionData{
		TxID:    entry.TxID,
		TxState: state,
	}

	switch {
	case len(entry.SolanaTransaction) > 0 && len(entry.StellarEnvelopeXDR) > 0:
		return data, fmt.Errorf("%w: history entry contains multiple raw transactions", ErrMalformed)
	case len(entry.SolanaTransaction) > 0:
		return assembleSolana(data, entry)
	case len(entry.StellarEnvelopeXDR) > 0:
		return assembleStellar(data, entry)
	default:
		return data, fmt.Errorf("%w: history entry contains no raw transaction", ErrMalformed)
	}
}

func assembleSolana(data TransactionData, entry HistoryEntry) (TransactionData, error) {
	tx, err := solanago.TransactionFromDecoder(bin.NewBinDecoder(entry.SolanaTransaction))
	if err != nil {
		return data, fmt.Errorf("%w: unable to decode solana transaction: %s", ErrMalformed, err)
	}

	m := &tx.Message
	if err := buildPayments(&data, entry, len(solana.PaymentIndexes(m))); err != nil {
		return data, err
	}

	memoIndex := solana.MemoInstructionIndex(m)
	if memoIndex < 0 {
		return data, nil
	}

	raw, err := solana.DecompileMemo(m, memoIndex)
	if err != nil {
		return data, fmt.Errorf("%w: %s", ErrMalformed, err)
	}

	// Binary memos travel base64 encoded inside the memo instruction; any
	// other payload is treated as a plain text memo.
	if decoded, decodeErr := base64.StdEncoding.DecodeString(string(raw)); decodeErr == nil {
		if memo, memoErr := MemoFromBytes(decoded); memoErr == nil {
			return data, applyBinaryMemo(&data, memo, entry.Invoices)
		}
	}

	applyTextMemo(&data, string(raw))
	return data, nil
}

func assembleStellar(data TransactionData, entry HistoryEntry) (TransactionData, error) {
	var env xdr.TransactionEnvelope
	if err := xdr.SafeUnmarshal(entry.StellarEnvelopeXDR, &env); err != nil {
		return data, fmt.Errorf("%w: unable to decode transaction envelope: %s", ErrMalformed, err)
	}

	paymentCount := 0
	for _, op := range env.Operations() {
		if op.Body.Type == xdr.OperationTypePayment {
			paymentCount++
		}
	}

	if err := buildPayments(&data, entry, paymentCount); err != nil {
		return data, err
	}

	memo := env.Memo()
	switch memo.Type {
	case xdr.MemoTypeMemoHash:
		hash := memo.MustHash()
		binMemo, err := MemoFromBytes(hash[:])
		if err != nil {
			// A hash memo that is not a binary memo carries no
			// application metadata; the payments stand on their own.
			return data, nil
		}
		return data, applyBinaryMemo(&data, binMemo, entry.Invoices)
	case xdr.MemoTypeMemoText:
		applyTextMemo(&data, memo.MustText())
	}

	return data, nil
}

// buildPayments zips the companion payment details against the number of
// payment instructions decoded from the raw transaction.
func buildPayments(data *TransactionData, entry HistoryEntry, paymentCount int) error {
	if paymentCount != len(entry.Payments) {
		return fmt.Errorf(
			"%w: number of payments (%d) does not match number of payment instructions (%d)",
			ErrMalformed, len(entry.Payments), paymentCount,
		)
	}
	if len(entry.Invoices) > 0 && len(entry.Invoices) != paymentCount {
		return fmt.Errorf(
			"%w: number of invoices (%d) does not match number of payments (%d)",
			ErrMalformed, len(entry.Invoices), paymentCount,
		)
	}

	data.Payments = make([]Payment, len(entry.Payments))
	for i, details := range entry.Payments {
		data.Payments[i] = Payment{
			Sender:      details.Sender,
			Destination: details.Destination,
			Type:        TransactionTypeUnknown,
			Quarks:      strconv.FormatInt(details.Quarks, 10),
		}
	}

	return nil
}

// applyBinaryMemo applies the transaction-level type tag to every payment
// and attaches invoices positionally when the memo foreign key matches the
// invoice list hash. Raw memo bytes are never exposed alongside a resolved
// binary memo.
func applyBinaryMemo(data *TransactionData, memo Memo, invoices InvoiceList) error {
	for i := range data.Payments {
		data.Payments[i].Type = memo.TransactionType()
	}

	matches, err := memoMatchesInvoiceList(memo, invoices)
	if err != nil {
		return err
	}
	if !matches {
		return nil
	}

	for i := range data.Payments {
		invoice := invoices[i]
		data.Payments[i].Invoice = &invoice
	}

	return nil
}

func applyTextMemo(data *TransactionData, text string) {
	for i := range data.Payments {
		data.Payments[i].Memo = text
	}
}
