package solana

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// MemoInstruction builds a memo program instruction carrying data as its
// raw UTF-8 payload.
func MemoInstruction(data string) solana.Instruction {
	return solana.NewInstruction(MemoProgramID, solana.AccountMetaSlice{}, []byte(data))
}

// DecompileMemo extracts the memo payload from the instruction at index.
// The returned bytes are a copy of the instruction data.
func DecompileMemo(m *solana.Message, index int) ([]byte, error) {
	if index < 0 || index >= len(m.Instructions) {
		return nil, fmt.Errorf("instruction index %d out of range", index)
	}
	if !isMemoProgram(programIDForInstruction(m, index)) {
		return nil, fmt.Errorf("instruction %d is not a memo instruction", index)
	}

	data := make([]byte, len(m.Instructions[index].Data))
	copy(data, m.Instructions[index].Data)
	return data, nil
}
