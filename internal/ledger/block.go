package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// genesisPreviousHash is the fixed sentinel linking value of the genesis
// block, which has no real predecessor.
const genesisPreviousHash = "0000000000000000000000000000000000000000000000000000000000000000"

// Block is an ordered batch of transactions linked to its predecessor by
// hash. Blocks are created only by mining (genesis aside) and are immutable
// once appended to the chain.
type Block struct {
	Index        int           `json:"index"`         // 0-based position in the chain
	Timestamp    int64         `json:"timestamp"`     // Creation time, Unix seconds UTC
	Transactions []Transaction `json:"transactions"`  // Confirmed transactions in insertion order
	PreviousHash string        `json:"previous_hash"` // Hash of the prior block
	Nonce        uint64        `json:"nonce"`         // Proof-of-work search variable
	Hash         string        `json:"hash"`          // Content hash satisfying the difficulty target
	Difficulty   int           `json:"difficulty"`    // Difficulty the block was mined at
}

// hashBlockContent computes the canonical SHA-256 content hash of a block's
// fields as a 64-character lowercase hex digest.
//
// Canonicalization: the transaction sequence is JSON-encoded in list order
// with fixed field order, then joined with the scalar fields as
// "index|timestamp|txJSON|previousHash|nonce". Re-hashing an unmodified
// block must reproduce its stored digest exactly; chain validation depends
// on this.
func hashBlockContent(index int, timestamp int64, txs []Transaction, previousHash string, nonce uint64) string {
	// Marshal cannot fail here: Transaction holds only strings and integers.
	txJSON, _ := json.Marshal(txs)

	content := fmt.Sprintf("%d|%d|%s|%s|%d", index, timestamp, txJSON, previousHash, nonce)
	digest := sha256.Sum256([]byte(content))

	return hex.EncodeToString(digest[:])
}

// hashMeetsDifficulty reports whether the hash has at least difficulty
// leading zero hex characters.
func hashMeetsDifficulty(hash string, difficulty int) bool {
	if difficulty <= 0 {
		return true
	}
	if difficulty > len(hash) {
		return false
	}

	return strings.HasPrefix(hash, strings.Repeat("0", difficulty))
}

// newGenesisBlock constructs the fixed first block of a chain. It carries a
// single SYSTEM to GENESIS marker transaction, links to the all-zero
// sentinel, and records difficulty 0 because it is constructed rather than
// mined.
func newGenesisBlock(at time.Time) Block {
	marker := Transaction{
		Sender:    SystemAccount,
		Recipient: GenesisAccount,
		Amount:    0,
		Note:      "Genesis",
		Timestamp: at.Unix(),
	}

	block := Block{
		Index:        0,
		Timestamp:    at.Unix(),
		Transactions: []Transaction{marker},
		PreviousHash: genesisPreviousHash,
		Nonce:        0,
		Difficulty:   0,
	}
	block.Hash = hashBlockContent(block.Index, block.Timestamp, block.Transactions, block.PreviousHash, block.Nonce)

	return block
}

// copyBlock returns a deep copy of the block so callers can never mutate
// chain-owned state through a returned value.
func copyBlock(b Block) Block {
	out := b
	out.Transactions = make([]Transaction, len(b.Transactions))
	copy(out.Transactions, b.Transactions)

	return out
}
