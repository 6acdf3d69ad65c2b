package solana

import (
	"github.com/gagliardetto/solana-go"
)

// Well-known program IDs. The token program is deliberately not a constant
// here: it differs between environments, so every token helper takes the
// program ID as a parameter.
var (
	// MemoProgramID is the memo program (v1).
	MemoProgramID = solana.MustPublicKeyFromBase58("Memo1UhkJRfHyvLMcVucJwxXeuD728EqVDDwQDxFMNo")

	// MemoProgramIDV2 is the widely deployed SPL Memo program.
	MemoProgramIDV2 = solana.MustPublicKeyFromBase58("MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr")
)

// Token program instruction opcodes.
const (
	TokenInstructionTransfer     = uint8(3)
	TokenInstructionSetAuthority = uint8(6)
)

// AuthorityType is the target of a SetAuthority instruction.
type AuthorityType uint8

const (
	AuthorityTypeMintTokens AuthorityType = iota
	AuthorityTypeFreezeAccount
	AuthorityTypeAccountHolder
	AuthorityTypeCloseAccount
)

// programIDForInstruction resolves the program an instruction targets.
// Returns the zero key if the index is out of bounds.
func programIDForInstruction(m *solana.Message, index int) solana.PublicKey {
	if index < 0 || index >= len(m.Instructions) {
		return solana.PublicKey{}
	}
	programIndex := int(m.Instructions[index].ProgramIDIndex)
	if programIndex >= len(m.AccountKeys) {
		return solana.PublicKey{}
	}
	return m.AccountKeys[programIndex]
}

// isMemoProgram reports whether the key is one of the known memo programs.
func isMemoProgram(programID solana.PublicKey) bool {
	return programID.Equals(MemoProgramID) || programID.Equals(MemoProgramIDV2)
}

// IsPaymentInstruction reports whether the instruction at index is a token
// transfer. This is the single payment-shape predicate shared by error
// correlation and payment extraction: both must agree on which instructions
// occupy the payment index space.
//
// Memo instructions and non-transfer token instructions (such as authority
// changes) are not payment shaped.
func IsPaymentInstruction(m *solana.Message, index int) bool {
	if index < 0 || index >= len(m.Instructions) {
		return false
	}
	if isMemoProgram(programIDForInstruction(m, index)) {
		return false
	}
	data := m.Instructions[index].Data
	return len(data) > 0 && data[0] == TokenInstructionTransfer
}

// PaymentIndexes returns the instruction indexes that are payment shaped,
// in transaction order.
func PaymentIndexes(m *solana.Message) []int {
	var indexes []int
	for i := range m.Instructions {
		if IsPaymentInstruction(m, i) {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// PaymentIndex maps an instruction index into the payment-only index space.
// Returns -1 when the instruction at index is not payment shaped.
func PaymentIndex(m *solana.Message, index int) int {
	if !IsPaymentInstruction(m, index) {
		return -1
	}
	paymentIndex := 0
	for i := 0; i < index; i++ {
		if IsPaymentInstruction(m, i) {
			paymentIndex++
		}
	}
	return paymentIndex
}

// MemoInstructionIndex returns the index of the first memo program
// instruction, or -1 if the transaction carries none.
func MemoInstructionIndex(m *solana.Message) int {
	for i := range m.Instructions {
		if isMemoProgram(programIDForInstruction(m, i)) {
			return i
		}
	}
	return -1
}
