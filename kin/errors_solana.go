package kin

import (
	solanago "github.com/gagliardetto/solana-go"

	"github.com/kinlabs/kin-go/solana"
)

// ErrorsFromSolanaTransaction correlates a single service-reported failure
// (reason plus failing instruction index) back to the instructions of a
// Solana transaction.
//
// OpErrors carries one entry per instruction with only the failing slot
// populated. PaymentErrors is indexed over transfer instructions only: memo
// and authority instructions occupy no slot, and if the failing instruction
// was one of those, PaymentErrors is nil.
func ErrorsFromSolanaTransaction(tx *solanago.Transaction, reason Reason, instructionIndex int) TransactionErrors {
	var txErrors TransactionErrors

	txErrors.TxError = ErrorFromReason(reason)
	if txErrors.TxError == nil {
		return txErrors
	}

	m := &tx.Message
	if instructionIndex < 0 || instructionIndex >= len(m.Instructions) {
		return txErrors
	}

	txErrors.OpErrors = make([]error, len(m.Instructions))
	txErrors.OpErrors[instructionIndex] = txErrors.TxError

	if paymentIndex := solana.PaymentIndex(m, instructionIndex); paymentIndex > -1 {
		txErrors.PaymentErrors = make([]error, len(solana.PaymentIndexes(m)))
		txErrors.PaymentErrors[paymentIndex] = txErrors.TxError
	}

	return txErrors
}
