package kin

import (
	"encoding/binary"
	"fmt"
)

// TransactionType is the memo-level classification of a transaction.
type TransactionType int16

const (
	TransactionTypeUnknown TransactionType = iota - 1
	TransactionTypeNone
	TransactionTypeEarn
	TransactionTypeSpend
	TransactionTypeP2P
)

const (
	// MemoLength is the exact wire size of a binary memo.
	MemoLength = 32

	// MaxMemoVersion is the highest memo version this SDK understands.
	// Decoding rejects anything newer so garbage never round-trips as data.
	MaxMemoVersion = 1

	// MaxForeignKeyLength is the memo capacity for the invoice correlation
	// hash. A SHA-224 digest (28 bytes) fits with a zero pad byte.
	MaxForeignKeyLength = 29

	maxVersion         = 7
	maxTransactionType = TransactionType(31)
)

// Memo is a fixed 32-byte binary memo embedding transaction metadata:
//
//	byte 0:      version (high 3 bits) and transaction type (low 5 bits)
//	bytes 1..2:  application index, little endian
//	bytes 3..31: foreign key (truncated invoice list hash, zero padded)
type Memo [MemoLength]byte

// NewMemo creates a memo from its parts. The foreign key may be shorter
// than MaxForeignKeyLength (it is zero padded) but never longer.
func NewMemo(version byte, txType TransactionType, appIndex uint16, foreignKey []byte) (Memo, error) {
	var m Memo

	switch {
	case version > maxVersion:
		return m, fmt.Errorf("version %d exceeds maximum of %d", version, maxVersion)
	case txType < TransactionTypeNone || txType > maxTransactionType:
		return m, fmt.Errorf("transaction type %d out of range", txType)
	case len(foreignKey) > MaxForeignKeyLength:
		return m, fmt.Errorf("foreign key length %d exceeds maximum of %d", len(foreignKey), MaxForeignKeyLength)
	}

	m[0] = version<<5 | byte(txType)
	binary.LittleEndian.PutUint16(m[1:3], appIndex)
	copy(m[3:], foreignKey)

	return m, nil
}

// MemoFromBytes decodes a binary memo. Buffers of the wrong length, or
// carrying a version newer than MaxMemoVersion, fail with ErrMalformed.
func MemoFromBytes(b []byte) (Memo, error) {
	var m Memo

	if len(b) != MemoLength {
		return m, fmt.Errorf("%w: invalid memo length %d", ErrMalformed, len(b))
	}

	copy(m[:], b)
	if m.Version() > MaxMemoVersion {
		return m, fmt.Errorf("%w: unsupported memo version %d", ErrMalformed, m.Version())
	}

	return m, nil
}

// Version returns the memo format version.
func (m Memo) Version() byte {
	return m[0] >> 5
}

// TransactionType returns the transaction type tag, or
// TransactionTypeUnknown for tags this SDK does not recognize.
func (m Memo) TransactionType() TransactionType {
	t := TransactionType(m[0] & 0x1f)
	if t > TransactionTypeP2P {
		return TransactionTypeUnknown
	}
	return t
}

// AppIndex returns the application index.
func (m Memo) AppIndex() uint16 {
	return binary.LittleEndian.Uint16(m[1:3])
}

// ForeignKey returns a copy of the 29-byte foreign key field.
func (m Memo) ForeignKey() []byte {
	fk := make([]byte, MaxForeignKeyLength)
	copy(fk, m[3:])
	return fk
}
