package client

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/stellar/go/xdr"

	"github.com/kinlabs/kin-go/kin"
	"github.com/kinlabs/kin-go/metrics"
)

// ErrTransactionNotFound is returned when the history service has no record
// of the requested transaction.
var ErrTransactionNotFound = errors.New("transaction not found")

// Client is the HTTP client for the transaction history service. It fetches
// raw history records and assembles them into the unified transaction view.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewClient creates a new history service client. If metrics is nil, no
// metrics are recorded.
func NewClient(baseURL string, httpClient *http.Client, m *metrics.Metrics, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		metrics:    m,
		logger:     logger,
	}
}

// GetTransaction fetches a transaction by id and decodes it.
func (c *Client) GetTransaction(ctx context.Context, txID []byte) (*kin.TransactionData, error) {
	u := fmt.Sprintf("%s/api/v1/transactions/%s", c.baseURL, hex.EncodeToString(txID))
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordHistoryRequest("GetTransaction", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.RecordHistoryRequest("GetTransaction", strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrTransactionNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.parseErrorResponse(resp)
	}

	var txResp transactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&txResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	data, err := c.responseToTxData(ctx, &txResp)
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "fetched transaction",
		"tx_id", hex.EncodeToString(data.TxID),
		"state", data.TxState.String(),
		"payments", len(data.Payments),
	)
	return data, nil
}

// HistoryOpts controls history paging.
type HistoryOpts struct {
	// Cursor resumes the listing after a previously returned cursor.
	Cursor string
	// Limit caps the number of returned transactions; the service default
	// applies when zero.
	Limit int
}

// GetHistory fetches the transaction history of an account, oldest first.
func (c *Client) GetHistory(ctx context.Context, address string, opts *HistoryOpts) ([]*kin.TransactionData, error) {
	u := fmt.Sprintf("%s/api/v1/accounts/%s/transactions", c.baseURL, url.PathEscape(address))
	if opts != nil {
		params := url.Values{}
		if opts.Cursor != "" {
			params.Set("cursor", opts.Cursor)
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
		if encoded := params.Encode(); encoded != "" {
			u += "?" + encoded
		}
	}

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordHistoryRequest("GetHistory", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.RecordHistoryRequest("GetHistory", strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseErrorResponse(resp)
	}

	var response struct {
		Items []transactionResponse `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	items := make([]*kin.TransactionData, len(response.Items))
	for i := range response.Items {
		data, err := c.responseToTxData(ctx, &response.Items[i])
		if err != nil {
			return nil, fmt.Errorf("failed to decode history item %d: %w", i, err)
		}
		items[i] = data
	}

	return items, nil
}

// parseErrorResponse attempts to parse an error response from the server.
func (c *Client) parseErrorResponse(resp *http.Response) error {
	var errResp struct {
		Error string `json:"error"`
	}

	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return fmt.Errorf("request failed: %s", errResp.Error)
}

// ParseRecord decodes a raw history-record JSON document into
// TransactionData. It is the offline equivalent of GetTransaction, for
// tooling that already holds a record.
func ParseRecord(data []byte) (*kin.TransactionData, error) {
	var resp transactionResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode history record: %w", err)
	}
	return recordToTxData(&resp)
}

// responseToTxData assembles the wire response into TransactionData,
// decoding any reported transaction error against the raw transaction.
func (c *Client) responseToTxData(ctx context.Context, resp *transactionResponse) (*kin.TransactionData, error) {
	format := "stellar"
	if resp.SolanaTransaction != "" {
		format = "solana"
	}

	data, err := recordToTxData(resp)
	if err != nil {
		c.metrics.RecordTransactionDecoded(format, "error")
		c.logger.ErrorContext(ctx, "failed to decode transaction",
			"tx_id", resp.TxID,
			"error", err,
		)
		return nil, err
	}
	c.metrics.RecordTransactionDecoded(format, "ok")

	return data, nil
}

func recordToTxData(resp *transactionResponse) (*kin.TransactionData, error) {
	entry, state, err := resp.historyEntry()
	if err != nil {
		return nil, err
	}

	data, err := kin.TxDataFromHistoryEntry(entry, state)
	if err != nil {
		return nil, err
	}

	if resp.TransactionError != nil {
		txErrors, err := decodeTransactionError(entry, resp.TransactionError)
		if err != nil {
			return nil, err
		}
		data.Errors = txErrors
	}

	return &data, nil
}

// decodeTransactionError maps a service-reported failure onto the
// operations of the raw transaction with the decoder matching its format.
func decodeTransactionError(entry kin.HistoryEntry, txError *transactionErrorResponse) (kin.TransactionErrors, error) {
	reason := kin.ReasonFromString(txError.Reason)

	if len(entry.SolanaTransaction) > 0 {
		tx, err := solanago.TransactionFromDecoder(bin.NewBinDecoder(entry.SolanaTransaction))
		if err != nil {
			return kin.TransactionErrors{}, fmt.Errorf("unable to decode solana transaction: %w", err)
		}
		return kin.ErrorsFromSolanaTransaction(tx, reason, txError.InstructionIndex), nil
	}

	var env xdr.TransactionEnvelope
	if err := xdr.SafeUnmarshal(entry.StellarEnvelopeXDR, &env); err != nil {
		return kin.TransactionErrors{}, fmt.Errorf("unable to decode transaction envelope: %w", err)
	}
	return kin.ErrorsFromStellarTransaction(env, reason, txError.InstructionIndex), nil
}

// transactionResponse is the API response format for a single transaction.
// Raw transaction bytes are base64 encoded; the transaction id is hex.
type transactionResponse struct {
	TxID               string                    `json:"tx_id"`
	State              string                    `json:"state"`
	StellarEnvelopeXDR string                    `json:"stellar_envelope_xdr,omitempty"`
	SolanaTransaction  string                    `json:"solana_transaction,omitempty"`
	Payments           []paymentResponse         `json:"payments"`
	Invoices           []invoiceResponse         `json:"invoices,omitempty"`
	TransactionError   *transactionErrorResponse `json:"transaction_error,omitempty"`
}

type paymentResponse struct {
	Sender      string `json:"sender"`
	Destination string `json:"destination"`
	Quarks      int64  `json:"quarks"`
}

type invoiceResponse struct {
	Items []invoiceItemResponse `json:"items"`
}

type invoiceItemResponse struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	// Amount is a Kin decimal string.
	Amount string `json:"amount"`
}

type transactionErrorResponse struct {
	Reason           string `json:"reason"`
	InstructionIndex int    `json:"instruction_index"`
}

// historyEntry converts the wire response into an assembler history entry.
func (r *transactionResponse) historyEntry() (kin.HistoryEntry, kin.TransactionState, error) {
	var entry kin.HistoryEntry

	txID, err := hex.DecodeString(r.TxID)
	if err != nil {
		return entry, kin.TransactionStateUnknown, fmt.Errorf("invalid tx_id %q: %w", r.TxID, err)
	}
	entry.TxID = txID

	if r.StellarEnvelopeXDR != "" {
		entry.StellarEnvelopeXDR, err = base64.StdEncoding.DecodeString(r.StellarEnvelopeXDR)
		if err != nil {
			return entry, kin.TransactionStateUnknown, fmt.Errorf("invalid stellar_envelope_xdr: %w", err)
		}
	}
	if r.SolanaTransaction != "" {
		entry.SolanaTransaction, err = base64.StdEncoding.DecodeString(r.SolanaTransaction)
		if err != nil {
			return entry, kin.TransactionStateUnknown, fmt.Errorf("invalid solana_transaction: %w", err)
		}
	}

	entry.Payments = make([]kin.PaymentDetails, len(r.Payments))
	for i, p := range r.Payments {
		sender, err := kin.PublicKeyFromString(p.Sender)
		if err != nil {
			return entry, kin.TransactionStateUnknown, fmt.Errorf("invalid sender address %q: %w", p.Sender, err)
		}
		destination, err := kin.PublicKeyFromString(p.Destination)
		if err != nil {
			return entry, kin.TransactionStateUnknown, fmt.Errorf("invalid destination address %q: %w", p.Destination, err)
		}
		entry.Payments[i] = kin.PaymentDetails{
			Sender:      sender,
			Destination: destination,
			Quarks:      p.Quarks,
		}
	}

	if len(r.Invoices) > 0 {
		entry.Invoices = make(kin.InvoiceList, len(r.Invoices))
		for i, inv := range r.Invoices {
			items := make([]kin.InvoiceItem, len(inv.Items))
			for j, item := range inv.Items {
				amount, err := decimal.NewFromString(item.Amount)
				if err != nil {
					return entry, kin.TransactionStateUnknown, fmt.Errorf("invalid invoice amount %q: %w", item.Amount, err)
				}
				items[j] = kin.InvoiceItem{
					Title:       item.Title,
					Description: item.Description,
					Amount:      amount,
				}
			}
			entry.Invoices[i] = kin.Invoice{Items: items}
		}
	}

	return entry, stateFromString(r.State), nil
}

func stateFromString(s string) kin.TransactionState {
	switch s {
	case "SUCCESS":
		return kin.TransactionStateSuccess
	case "FAILED":
		return kin.TransactionStateFailed
	default:
		return kin.TransactionStateUnknown
	}
}
