package kin

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stellar/go/strkey"
)

// PublicKey is a blockchain-agnostic representation of an ed25519 public
// key.
type PublicKey []byte

// PublicKeyFromString parses either a Stellar address (56-character strkey
// starting with G) or a base58-encoded Solana public key.
func PublicKeyFromString(address string) (PublicKey, error) {
	if len(address) == 56 {
		if address[0] != 'G' {
			return nil, errors.New("provided address is not a public key")
		}

		raw, err := strkey.Decode(strkey.VersionByteAccountID, address)
		if err != nil {
			return nil, fmt.Errorf("invalid stellar address: %w", err)
		}
		return PublicKey(raw), nil
	}

	k, err := solanago.PublicKeyFromBase58(address)
	if err != nil {
		return nil, fmt.Errorf("address format not supported: %w", err)
	}
	return PublicKey(k.Bytes()), nil
}

// StellarAddress returns the Stellar strkey encoding of the key.
func (k PublicKey) StellarAddress() string {
	return strkey.MustEncode(strkey.VersionByteAccountID, k)
}

// Base58 returns the base58 encoding of the key.
func (k PublicKey) Base58() string {
	return k.SolanaKey().String()
}

// SolanaKey returns the key in solana-go form.
func (k PublicKey) SolanaKey() solanago.PublicKey {
	return solanago.PublicKeyFromBytes(k)
}

func (k PublicKey) Equals(other PublicKey) bool {
	return bytes.Equal(k, other)
}

// PrivateKey is a blockchain-agnostic representation of an ed25519 private
// key seed.
type PrivateKey []byte

// NewPrivateKey generates a random private key.
func NewPrivateKey() (PrivateKey, error) {
	seed := make([]byte, ed25519.SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("failed to generate seed: %w", err)
	}
	return PrivateKey(seed), nil
}

// PrivateKeyFromString parses a Stellar seed (56-character strkey starting
// with S).
func PrivateKeyFromString(seed string) (PrivateKey, error) {
	if len(seed) != 56 {
		return nil, errors.New("seed format not supported")
	}
	if seed[0] != 'S' {
		return nil, errors.New("provided value is not a seed")
	}

	raw, err := strkey.Decode(strkey.VersionByteSeed, seed)
	if err != nil {
		return nil, fmt.Errorf("invalid stellar seed: %w", err)
	}
	return PrivateKey(raw), nil
}

// Public returns the public key corresponding to the private key.
func (k PrivateKey) Public() PublicKey {
	private := ed25519.NewKeyFromSeed(k)
	return PublicKey(private.Public().(ed25519.PublicKey))
}

// StellarSeed returns the Stellar strkey encoding of the seed.
func (k PrivateKey) StellarSeed() string {
	return strkey.MustEncode(strkey.VersionByteSeed, k)
}

// SolanaKey returns the expanded 64-byte key in solana-go form.
func (k PrivateKey) SolanaKey() solanago.PrivateKey {
	return solanago.PrivateKey(ed25519.NewKeyFromSeed(k))
}

func (k PrivateKey) Equals(other PrivateKey) bool {
	return bytes.Equal(k, other)
}
