package kin

import (
	"errors"
	"fmt"
)

// Semantic payment failure errors shared by both ledger backends.
// Decoders wrap these with backend detail via fmt.Errorf("%w: ..."), so
// callers should match with errors.Is.
var (
	// ErrMalformed indicates the transaction or one of its operations was
	// structurally invalid.
	ErrMalformed = errors.New("malformed transaction")

	// ErrTransactionFailed indicates the transaction failed because one of
	// its operations failed. Inspect OpErrors for attribution.
	ErrTransactionFailed = errors.New("transaction failed")

	ErrBadNonce                = errors.New("bad nonce")
	ErrInvalidSignature        = errors.New("invalid signature")
	ErrInsufficientBalance     = errors.New("insufficient balance")
	ErrInsufficientFee         = errors.New("insufficient fee")
	ErrSenderDoesNotExist      = errors.New("sender account does not exist")
	ErrDestinationDoesNotExist = errors.New("destination account does not exist")
	ErrAccountExists           = errors.New("account already exists")
	ErrAccountDoesNotExist     = errors.New("account does not exist")
)

// UnknownResultCodeError is returned when a result code falls outside the
// known mapping tables. It is not fatal to a decode; it is surfaced per slot
// so callers can detect protocol drift on new ledger versions.
type UnknownResultCodeError struct {
	// Context is "transaction" or "operation", depending on which level of
	// the result carried the code.
	Context string
	Code    int32
}

func (e *UnknownResultCodeError) Error() string {
	return fmt.Sprintf("unknown %s result code: %d", e.Context, e.Code)
}

// TransactionErrors contains the error details for a transaction.
//
// OpErrors and PaymentErrors are sparse: a nil slice means the decoder did
// not produce that view, a nil element means the entry at that position
// succeeded. OpErrors has one entry per operation/instruction in the
// transaction, while PaymentErrors is indexed over payment instructions
// only (memo and authority instructions are excluded from its index space).
type TransactionErrors struct {
	TxError error

	OpErrors      []error
	PaymentErrors []error
}

// Reason is the coarse failure reason reported by the transaction service.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonUnauthorized
	ReasonBadNonce
	ReasonInsufficientFunds
	ReasonInvalidAccount
)

var reasonNames = map[Reason]string{
	ReasonNone:              "NONE",
	ReasonUnauthorized:      "UNAUTHORIZED",
	ReasonBadNonce:          "BAD_NONCE",
	ReasonInsufficientFunds: "INSUFFICIENT_FUNDS",
	ReasonInvalidAccount:    "INVALID_ACCOUNT",
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// ReasonFromString parses the wire form of a Reason. Unrecognized values
// map to ReasonNone, which callers treat as "no error reported".
func ReasonFromString(s string) Reason {
	for r, name := range reasonNames {
		if name == s {
			return r
		}
	}
	return ReasonNone
}

// ErrorFromReason maps a service failure reason to its semantic error.
// ReasonNone (and unrecognized reasons) map to nil.
func ErrorFromReason(reason Reason) error {
	switch reason {
	case ReasonUnauthorized:
		return ErrInvalidSignature
	case ReasonBadNonce:
		return ErrBadNonce
	case ReasonInsufficientFunds:
		return ErrInsufficientBalance
	case ReasonInvalidAccount:
		return ErrAccountDoesNotExist
	default:
		return nil
	}
}
