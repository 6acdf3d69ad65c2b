package kin

import (
	"crypto/sha256"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInvoiceList() InvoiceList {
	return InvoiceList{
		{
			Items: []InvoiceItem{
				{Title: "lineitem1", Description: "desc1", Amount: decimal.RequireFromString("0.00001")},
				{Title: "lineitem2", Amount: decimal.RequireFromString("15")},
			},
		},
		{
			Items: []InvoiceItem{
				{Title: "lineitem3", Amount: decimal.RequireFromString("2.5")},
			},
		},
	}
}

func TestInvoiceListSerialize_Deterministic(t *testing.T) {
	il := testInvoiceList()

	first, err := il.Serialize()
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := testInvoiceList().Serialize()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// A content change must change the serialized form.
	changed := testInvoiceList()
	changed[0].Items[0].Title = "other"
	third, err := changed.Serialize()
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestInvoiceListHash(t *testing.T) {
	il := testInvoiceList()

	h, err := il.Hash()
	require.NoError(t, err)
	require.Len(t, h, sha256.Size224)

	serialized, err := il.Serialize()
	require.NoError(t, err)
	expected := sha256.Sum224(serialized)
	assert.Equal(t, expected[:], h)
}

func TestMemoMatchesInvoiceList(t *testing.T) {
	il := testInvoiceList()

	h, err := il.Hash()
	require.NoError(t, err)

	memo, err := NewMemo(1, TransactionTypeSpend, 10, h)
	require.NoError(t, err)

	matches, err := memoMatchesInvoiceList(memo, il)
	require.NoError(t, err)
	assert.True(t, matches)

	// A different list produces a different hash.
	other := testInvoiceList()
	other[1].Items[0].Amount = decimal.RequireFromString("3")
	matches, err = memoMatchesInvoiceList(memo, other)
	require.NoError(t, err)
	assert.False(t, matches)

	// An empty list never matches, even a zero foreign key.
	emptyFK, err := NewMemo(1, TransactionTypeSpend, 10, nil)
	require.NoError(t, err)
	matches, err = memoMatchesInvoiceList(emptyFK, InvoiceList{})
	require.NoError(t, err)
	assert.False(t, matches)
}
