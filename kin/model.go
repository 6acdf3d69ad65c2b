package kin

// TransactionState is the terminal state of a transaction as reported by
// the history service.
type TransactionState int

const (
	TransactionStateUnknown TransactionState = iota
	TransactionStateSuccess
	TransactionStateFailed
)

func (s TransactionState) String() string {
	switch s {
	case TransactionStateSuccess:
		return "SUCCESS"
	case TransactionStateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Payment is a single decoded payment within a transaction. Payments are
// constructed by the transaction assembler and are not mutated afterwards.
type Payment struct {
	Sender      PublicKey
	Destination PublicKey

	// Type is the transaction-level type tag from the binary memo, shared
	// by all payments in the transaction.
	Type TransactionType

	// Quarks is the payment amount in quarks, as a decimal string.
	Quarks string

	// Invoice is set when invoice correlation succeeded for this payment.
	Invoice *Invoice

	// Memo holds the raw text memo. It is only set when the transaction
	// memo was not a binary memo, so a payment never presents both a raw
	// memo and a resolved invoice.
	Memo string
}

// TransactionData is the unified application-level view of a transaction.
type TransactionData struct {
	TxID     []byte
	TxState  TransactionState
	Payments []Payment

	// Errors holds decoded failure details when the history service
	// reported an error for the transaction.
	Errors TransactionErrors
}
