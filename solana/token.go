package solana

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Transfer builds a token program Transfer instruction.
//
// Account layout: [source, destination, owner].
// Data layout: [0] = opcode (3), [1..9] = amount (u64, little endian).
func Transfer(source, dest, owner solana.PublicKey, amount uint64, tokenProgram solana.PublicKey) solana.Instruction {
	data := make([]byte, 9)
	data[0] = TokenInstructionTransfer
	binary.LittleEndian.PutUint64(data[1:], amount)

	return solana.NewInstruction(
		tokenProgram,
		solana.AccountMetaSlice{
			solana.Meta(source).WRITE(),
			solana.Meta(dest).WRITE(),
			solana.Meta(owner).SIGNER(),
		},
		data,
	)
}

// SetAuthority builds a token program SetAuthority instruction.
//
// Account layout: [account, currentAuthority].
// Data layout: [0] = opcode (6), [1] = authority type, [2] = new-authority
// option flag, [3..35] = new authority key when the flag is set.
func SetAuthority(account, currentAuthority solana.PublicKey, newAuthority *solana.PublicKey, authorityType AuthorityType, tokenProgram solana.PublicKey) solana.Instruction {
	data := []byte{TokenInstructionSetAuthority, byte(authorityType), 0}
	if newAuthority != nil {
		data[2] = 1
		data = append(data, newAuthority.Bytes()...)
	}

	return solana.NewInstruction(
		tokenProgram,
		solana.AccountMetaSlice{
			solana.Meta(account).WRITE(),
			solana.Meta(currentAuthority).SIGNER(),
		},
		data,
	)
}

// DecompiledTransfer is a token transfer recovered from a compiled message.
type DecompiledTransfer struct {
	Program     solana.PublicKey
	Source      solana.PublicKey
	Destination solana.PublicKey
	Owner       solana.PublicKey
	Amount      uint64
}

// DecompileTransfer extracts a token transfer from the instruction at index.
func DecompileTransfer(m *solana.Message, index int) (*DecompiledTransfer, error) {
	if index < 0 || index >= len(m.Instructions) {
		return nil, fmt.Errorf("instruction index %d out of range", index)
	}
	if !IsPaymentInstruction(m, index) {
		return nil, fmt.Errorf("instruction %d is not a token transfer", index)
	}

	instruction := m.Instructions[index]
	if len(instruction.Data) != 9 {
		return nil, fmt.Errorf("invalid transfer instruction data size: %d", len(instruction.Data))
	}
	if len(instruction.Accounts) < 3 {
		return nil, fmt.Errorf("invalid number of transfer accounts: %d", len(instruction.Accounts))
	}

	accounts := make([]solana.PublicKey, 3)
	for i := 0; i < 3; i++ {
		accountIndex := int(instruction.Accounts[i])
		if accountIndex >= len(m.AccountKeys) {
			return nil, fmt.Errorf("transfer account index %d out of range", accountIndex)
		}
		accounts[i] = m.AccountKeys[accountIndex]
	}

	return &DecompiledTransfer{
		Program:     programIDForInstruction(m, index),
		Source:      accounts[0],
		Destination: accounts[1],
		Owner:       accounts[2],
		Amount:      binary.LittleEndian.Uint64(instruction.Data[1:]),
	}, nil
}
