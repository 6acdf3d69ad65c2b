package kin

import (
	"fmt"

	"github.com/stellar/go/xdr"
)

// ErrorsFromXDR converts a Stellar TransactionResult into TransactionErrors.
//
// Operation results are only inspected when the transaction failed because
// one of its operations failed; each operation decodes independently, and a
// nil OpErrors entry means that operation succeeded.
func ErrorsFromXDR(result xdr.TransactionResult) TransactionErrors {
	var txErrors TransactionErrors

	switch result.Result.Code {
	case xdr.TransactionResultCodeTxSuccess:
		return txErrors
	case xdr.TransactionResultCodeTxMissingOperation:
		txErrors.TxError = ErrMalformed
	case xdr.TransactionResultCodeTxBadSeq:
		txErrors.TxError = ErrBadNonce
	case xdr.TransactionResultCodeTxBadAuth:
		txErrors.TxError = ErrInvalidSignature
	case xdr.TransactionResultCodeTxInsufficientBalance:
		txErrors.TxError = ErrInsufficientBalance
	case xdr.TransactionResultCodeTxNoAccount:
		txErrors.TxError = ErrSenderDoesNotExist
	case xdr.TransactionResultCodeTxInsufficientFee:
		txErrors.TxError = ErrInsufficientFee
	case xdr.TransactionResultCodeTxFailed:
		txErrors.TxError = ErrTransactionFailed
	default:
		txErrors.TxError = &UnknownResultCodeError{
			Context: "transaction",
			Code:    int32(result.Result.Code),
		}
		return txErrors
	}

	if result.Result.Code != xdr.TransactionResultCodeTxFailed {
		return txErrors
	}

	opResults, ok := result.OperationResults()
	if !ok {
		return txErrors
	}

	txErrors.OpErrors = make([]error, len(opResults))
	for i, opResult := range opResults {
		txErrors.OpErrors[i] = errorFromOperationResult(opResult)
	}

	return txErrors
}

func errorFromOperationResult(result xdr.OperationResult) error {
	switch result.Code {
	case xdr.OperationResultCodeOpInner:
		return errorFromOperationResultTr(*result.Tr)
	case xdr.OperationResultCodeOpBadAuth:
		return ErrInvalidSignature
	case xdr.OperationResultCodeOpNoAccount:
		return ErrSenderDoesNotExist
	default:
		return &UnknownResultCodeError{Context: "operation", Code: int32(result.Code)}
	}
}

func errorFromOperationResultTr(tr xdr.OperationResultTr) error {
	switch tr.Type {
	case xdr.OperationTypeCreateAccount:
		switch tr.CreateAccountResult.Code {
		case xdr.CreateAccountResultCodeCreateAccountSuccess:
			return nil
		case xdr.CreateAccountResultCodeCreateAccountMalformed:
			return fmt.Errorf("%w: create account operation malformed", ErrMalformed)
		case xdr.CreateAccountResultCodeCreateAccountUnderfunded:
			return ErrInsufficientBalance
		case xdr.CreateAccountResultCodeCreateAccountAlreadyExist:
			return ErrAccountExists
		default:
			return &UnknownResultCodeError{
				Context: "operation",
				Code:    int32(tr.CreateAccountResult.Code),
			}
		}
	case xdr.OperationTypePayment:
		switch tr.PaymentResult.Code {
		case xdr.PaymentResultCodePaymentSuccess:
			return nil
		case xdr.PaymentResultCodePaymentMalformed:
			return fmt.Errorf("%w: payment operation malformed", ErrMalformed)
		case xdr.PaymentResultCodePaymentUnderfunded:
			return ErrInsufficientBalance
		case xdr.PaymentResultCodePaymentSrcNoTrust:
			return fmt.Errorf("%w: source account does not trust the issuer of the asset", ErrMalformed)
		case xdr.PaymentResultCodePaymentSrcNotAuthorized:
			return fmt.Errorf("%w: source account not authorized to transfer", ErrInvalidSignature)
		case xdr.PaymentResultCodePaymentNoDestination:
			return ErrDestinationDoesNotExist
		case xdr.PaymentResultCodePaymentNoTrust:
			return fmt.Errorf("%w: destination account does not trust the issuer of the asset", ErrMalformed)
		case xdr.PaymentResultCodePaymentNotAuthorized:
			return fmt.Errorf("%w: destination account not authorized to receive", ErrInvalidSignature)
		default:
			return &UnknownResultCodeError{
				Context: "operation",
				Code:    int32(tr.PaymentResult.Code),
			}
		}
	default:
		// Operation kinds the SDK never submits (account merge, set options,
		// trust lines) surface as unknown rather than being half-mapped.
		return &UnknownResultCodeError{Context: "operation", Code: int32(tr.Type)}
	}
}

// ErrorsFromStellarTransaction correlates a single service-reported failure
// (reason plus failing operation index) back to the operations of a Stellar
// transaction envelope.
//
// OpErrors carries one entry per operation with only the failing slot
// populated. PaymentErrors is indexed over payment operations only; it is
// nil when the failing operation was not a payment.
func ErrorsFromStellarTransaction(env xdr.TransactionEnvelope, reason Reason, opIndex int) TransactionErrors {
	var txErrors TransactionErrors

	txErrors.TxError = ErrorFromReason(reason)
	if txErrors.TxError == nil {
		return txErrors
	}

	ops := env.Operations()
	if opIndex < 0 || opIndex >= len(ops) {
		return txErrors
	}

	txErrors.OpErrors = make([]error, len(ops))
	txErrors.OpErrors[opIndex] = txErrors.TxError

	paymentIndex := -1
	paymentCount := 0
	for i, op := range ops {
		if op.Body.Type != xdr.OperationTypePayment {
			continue
		}
		if i == opIndex {
			paymentIndex = paymentCount
		}
		paymentCount++
	}

	if paymentIndex > -1 {
		txErrors.PaymentErrors = make([]error, paymentCount)
		txErrors.PaymentErrors[paymentIndex] = txErrors.TxError
	}

	return txErrors
}
