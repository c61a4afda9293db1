// Package block describes the subset of a chain block that drives a render
// and decodes it from the JSON-RPC block shape.
package block

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

type Transaction struct {
	Hash string `json:"hash"`
}

// UnmarshalJSON accepts either a full transaction object or a bare hash,
// as returned by eth_getBlockByNumber with and without full transactions.
func (tx *Transaction) UnmarshalJSON(b []byte) error {
	var hash string
	if err := json.Unmarshal(b, &hash); err == nil {
		tx.Hash = hash
		return nil
	}
	var obj struct {
		Hash string `json:"hash"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	tx.Hash = obj.Hash
	return nil
}

// Digest is an immutable block record.
type Digest struct {
	Number       uint64
	Hash         string
	ParentHash   string
	GasUsed      *big.Int
	GasLimit     *big.Int
	Transactions []Transaction
}

type digestJSON struct {
	Number       *hexutil.Uint64 `json:"number"`
	Hash         string          `json:"hash"`
	ParentHash   string          `json:"parentHash"`
	GasUsed      *hexutil.Big    `json:"gasUsed"`
	GasLimit     *hexutil.Big    `json:"gasLimit"`
	Transactions []Transaction   `json:"transactions"`
}

func (d *Digest) UnmarshalJSON(b []byte) error {
	var raw digestJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*d = Digest{
		Hash:         raw.Hash,
		ParentHash:   raw.ParentHash,
		Transactions: raw.Transactions,
	}
	if raw.Number != nil {
		d.Number = uint64(*raw.Number)
	}
	if raw.GasUsed != nil {
		d.GasUsed = raw.GasUsed.ToInt()
	}
	if raw.GasLimit != nil {
		d.GasLimit = raw.GasLimit.ToInt()
	}
	return nil
}

func (d Digest) MarshalJSON() ([]byte, error) {
	number := hexutil.Uint64(d.Number)
	raw := digestJSON{
		Number:       &number,
		Hash:         d.Hash,
		ParentHash:   d.ParentHash,
		GasUsed:      (*hexutil.Big)(d.GasUsed),
		GasLimit:     (*hexutil.Big)(d.GasLimit),
		Transactions: d.Transactions,
	}
	return json.Marshal(raw)
}

// Parse decodes a JSON block document.
func Parse(b []byte) (Digest, error) {
	var d Digest
	if err := json.Unmarshal(b, &d); err != nil {
		return Digest{}, fmt.Errorf("decoding block: %w", err)
	}
	return d, nil
}

// GasRatio is GasUsed/GasLimit. Both operands are rounded to float64 before
// dividing, matching a renderer that parses the hex quantities into doubles.
func (d Digest) GasRatio() (float64, error) {
	if d.GasLimit == nil || d.GasLimit.Sign() == 0 {
		return 0, &InvalidGasError{Reason: "gas limit is zero or missing"}
	}
	if d.GasUsed == nil {
		return 0, &InvalidGasError{Reason: "gas used is missing"}
	}
	if d.GasUsed.Sign() < 0 || d.GasLimit.Sign() < 0 {
		return 0, &InvalidGasError{Reason: "negative gas quantity"}
	}
	used, _ := new(big.Float).SetInt(d.GasUsed).Float64()
	limit, _ := new(big.Float).SetInt(d.GasLimit).Float64()
	return used / limit, nil
}

// TxCount is the number of transactions in the block.
func (d Digest) TxCount() int {
	return len(d.Transactions)
}
