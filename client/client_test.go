package client

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinlabs/kin-go/kin"
	"github.com/kinlabs/kin-go/solana"
)

type testAccounts struct {
	tokenProgram solanago.PublicKey
	sender       kin.PublicKey
	destination  kin.PublicKey
}

func newTestAccounts(t *testing.T) testAccounts {
	t.Helper()

	sender, err := kin.NewPrivateKey()
	require.NoError(t, err)
	destination, err := kin.NewPrivateKey()
	require.NoError(t, err)
	tokenProgram, err := solanago.NewRandomPrivateKey()
	require.NoError(t, err)

	return testAccounts{
		tokenProgram: tokenProgram.PublicKey(),
		sender:       sender.Public(),
		destination:  destination.Public(),
	}
}

// solanaRecord builds a history record wrapping a single-transfer Solana
// transaction with an optional memo instruction.
func (a testAccounts) solanaRecord(t *testing.T, memoData string, quarks int64) transactionResponse {
	t.Helper()

	instructions := []solanago.Instruction{}
	if memoData != "" {
		instructions = append(instructions, solana.MemoInstruction(memoData))
	}
	instructions = append(instructions, solana.Transfer(
		a.sender.SolanaKey(),
		a.destination.SolanaKey(),
		a.sender.SolanaKey(),
		uint64(quarks),
		a.tokenProgram,
	))

	tx, err := solanago.NewTransaction(instructions, solanago.Hash{}, solanago.TransactionPayer(a.sender.SolanaKey()))
	require.NoError(t, err)
	raw, err := tx.MarshalBinary()
	require.NoError(t, err)

	return transactionResponse{
		TxID:              hex.EncodeToString([]byte("test-tx-id")),
		State:             "SUCCESS",
		SolanaTransaction: base64.StdEncoding.EncodeToString(raw),
		Payments: []paymentResponse{
			{
				Sender:      a.sender.Base58(),
				Destination: a.destination.Base58(),
				Quarks:      quarks,
			},
		},
	}
}

func TestGetTransaction(t *testing.T) {
	accounts := newTestAccounts(t)
	record := accounts.solanaRecord(t, "1-test-memo", 100)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/transactions/"+record.TxID, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(record))
	}))
	defer server.Close()

	c := NewClient(server.URL, nil, nil, nil)
	data, err := c.GetTransaction(context.Background(), []byte("test-tx-id"))
	require.NoError(t, err)

	assert.Equal(t, []byte("test-tx-id"), data.TxID)
	assert.Equal(t, kin.TransactionStateSuccess, data.TxState)
	require.Len(t, data.Payments, 1)
	assert.True(t, data.Payments[0].Sender.Equals(accounts.sender))
	assert.True(t, data.Payments[0].Destination.Equals(accounts.destination))
	assert.Equal(t, "100", data.Payments[0].Quarks)
	assert.Equal(t, "1-test-memo", data.Payments[0].Memo)
	assert.NoError(t, data.Errors.TxError)
}

func TestGetTransaction_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(server.URL, nil, nil, nil)
	_, err := c.GetTransaction(context.Background(), []byte("missing"))
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestGetTransaction_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "database unavailable"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, nil, nil, nil)
	_, err := c.GetTransaction(context.Background(), []byte("some-id"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database unavailable")
}

func TestGetTransaction_WithTransactionError(t *testing.T) {
	accounts := newTestAccounts(t)
	record := accounts.solanaRecord(t, "", 100)
	record.State = "FAILED"
	record.TransactionError = &transactionErrorResponse{
		Reason:           "INSUFFICIENT_FUNDS",
		InstructionIndex: 0,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(record))
	}))
	defer server.Close()

	c := NewClient(server.URL, nil, nil, nil)
	data, err := c.GetTransaction(context.Background(), []byte("test-tx-id"))
	require.NoError(t, err)

	assert.Equal(t, kin.TransactionStateFailed, data.TxState)
	assert.ErrorIs(t, data.Errors.TxError, kin.ErrInsufficientBalance)
	require.Len(t, data.Errors.OpErrors, 1)
	assert.ErrorIs(t, data.Errors.OpErrors[0], kin.ErrInsufficientBalance)
	require.Len(t, data.Errors.PaymentErrors, 1)
	assert.ErrorIs(t, data.Errors.PaymentErrors[0], kin.ErrInsufficientBalance)
}

func TestGetHistory(t *testing.T) {
	accounts := newTestAccounts(t)
	first := accounts.solanaRecord(t, "", 100)
	second := accounts.solanaRecord(t, "", 200)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/accounts/"+accounts.sender.Base58()+"/transactions", r.URL.Path)
		assert.Equal(t, "abc", r.URL.Query().Get("cursor"))
		assert.Equal(t, "25", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"items": []transactionResponse{first, second},
		}))
	}))
	defer server.Close()

	c := NewClient(server.URL, nil, nil, nil)
	items, err := c.GetHistory(context.Background(), accounts.sender.Base58(), &HistoryOpts{
		Cursor: "abc",
		Limit:  25,
	})
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "100", items[0].Payments[0].Quarks)
	assert.Equal(t, "200", items[1].Payments[0].Quarks)
}

func TestGetHistory_DecodeFailure(t *testing.T) {
	accounts := newTestAccounts(t)
	record := accounts.solanaRecord(t, "", 100)
	// Companion payment list no longer matches the raw transaction.
	record.Payments = append(record.Payments, record.Payments[0])

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"items": []transactionResponse{record},
		}))
	}))
	defer server.Close()

	c := NewClient(server.URL, nil, nil, nil)
	_, err := c.GetHistory(context.Background(), accounts.sender.Base58(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, kin.ErrMalformed)
}

func TestParseRecord(t *testing.T) {
	accounts := newTestAccounts(t)
	record := accounts.solanaRecord(t, "offline", 42)

	raw, err := json.Marshal(record)
	require.NoError(t, err)

	data, err := ParseRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, []byte("test-tx-id"), data.TxID)
	require.Len(t, data.Payments, 1)
	assert.Equal(t, "42", data.Payments[0].Quarks)
	assert.Equal(t, "offline", data.Payments[0].Memo)

	_, err = ParseRecord([]byte("not json"))
	assert.Error(t, err)
}
