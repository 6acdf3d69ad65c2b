package kin

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/shopspring/decimal"
)

// InvoiceItem is a single line item of an invoice.
type InvoiceItem struct {
	Title       string
	Description string
	Amount      decimal.Decimal
}

// Invoice is an ordered list of items describing what a payment was for.
type Invoice struct {
	Items []InvoiceItem
}

// InvoiceList is an ordered list of invoices, one per payment in a
// transaction. Its serialized form is hashed into the memo foreign key so a
// receiver can locate the matching invoices off-chain.
type InvoiceList []Invoice

// invoiceItemWire is the canonical serialization shape of an InvoiceItem.
// Amounts are serialized in quarks so the hash does not depend on decimal
// string formatting.
type invoiceItemWire struct {
	Title       string
	Description string
	Quarks      int64
}

type invoiceWire struct {
	Items []invoiceItemWire
}

type invoiceListWire struct {
	Invoices []invoiceWire
}

// Serialize produces the canonical binary form of the invoice list. The
// encoding is deterministic: equal lists always serialize to equal bytes.
func (il InvoiceList) Serialize() ([]byte, error) {
	wire := invoiceListWire{Invoices: make([]invoiceWire, len(il))}
	for i, invoice := range il {
		items := make([]invoiceItemWire, len(invoice.Items))
		for j, item := range invoice.Items {
			quarks, err := KinToQuarks(item.Amount.String())
			if err != nil {
				return nil, fmt.Errorf("invalid invoice amount: %w", err)
			}
			items[j] = invoiceItemWire{
				Title:       item.Title,
				Description: item.Description,
				Quarks:      quarks,
			}
		}
		wire.Invoices[i] = invoiceWire{Items: items}
	}

	buf := new(bytes.Buffer)
	if err := bin.NewBorshEncoder(buf).Encode(wire); err != nil {
		return nil, fmt.Errorf("failed to serialize invoice list: %w", err)
	}

	return buf.Bytes(), nil
}

// Hash returns the SHA-224 digest of the serialized invoice list. This is
// the value embedded (zero padded) in the memo foreign key.
func (il InvoiceList) Hash() ([]byte, error) {
	b, err := il.Serialize()
	if err != nil {
		return nil, err
	}

	h := sha256.Sum224(b)
	return h[:], nil
}

// memoMatchesInvoiceList reports whether the memo foreign key carries the
// invoice list hash. Only the digest bytes participate; the trailing pad
// byte of the foreign key is ignored.
func memoMatchesInvoiceList(m Memo, il InvoiceList) (bool, error) {
	if len(il) == 0 {
		return false, nil
	}

	ilHash, err := il.Hash()
	if err != nil {
		return false, err
	}

	return bytes.Equal(m.ForeignKey()[:sha256.Size224], ilHash), nil
}
