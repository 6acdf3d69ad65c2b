package kin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyRoundTrips(t *testing.T) {
	priv, err := NewPrivateKey()
	require.NoError(t, err)
	require.Len(t, []byte(priv), 32)

	pub := priv.Public()
	require.Len(t, []byte(pub), 32)

	parsedPriv, err := PrivateKeyFromString(priv.StellarSeed())
	require.NoError(t, err)
	assert.True(t, priv.Equals(parsedPriv))

	parsedPub, err := PublicKeyFromString(pub.StellarAddress())
	require.NoError(t, err)
	assert.True(t, pub.Equals(parsedPub))

	parsedPub, err = PublicKeyFromString(pub.Base58())
	require.NoError(t, err)
	assert.True(t, pub.Equals(parsedPub))
}

func TestPublicKeyFromString_Invalid(t *testing.T) {
	priv, err := NewPrivateKey()
	require.NoError(t, err)

	for _, address := range []string{
		"",
		"invalid",
		priv.StellarSeed(), // seed, not an address
	} {
		_, err := PublicKeyFromString(address)
		assert.Error(t, err, "address %q", address)
	}
}

func TestPrivateKeyFromString_Invalid(t *testing.T) {
	priv, err := NewPrivateKey()
	require.NoError(t, err)

	for _, seed := range []string{
		"",
		"invalid",
		priv.Public().StellarAddress(), // address, not a seed
	} {
		_, err := PrivateKeyFromString(seed)
		assert.Error(t, err, "seed %q", seed)
	}
}

func TestPrivateKey_SolanaKey(t *testing.T) {
	priv, err := NewPrivateKey()
	require.NoError(t, err)

	solanaKey := priv.SolanaKey()
	require.Len(t, []byte(solanaKey), 64)
	assert.Equal(t, priv.Public().SolanaKey(), solanaKey.PublicKey())
}
