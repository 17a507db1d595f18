package snapshot

import (
	"encoding/json"
	"errors"

	"github.com/HyrumHendrickson/Blockchain-v1/internal/ledger"
)

// ErrCorruptSaveFile is returned when a loaded document is malformed or
// reconstructs into a chain that fails validation.
var ErrCorruptSaveFile = errors.New("corrupt save file")

// transactionDocument is the persisted shape of a transaction.
type transactionDocument struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Amount    int64  `json:"amount"`
	Note      string `json:"note"`
	Timestamp int64  `json:"timestamp"`
}

// blockDocument is the persisted shape of a block. The difficulty each block
// was mined at is stored alongside it so validation stays well-defined when
// the runtime difficulty changes over a chain's history.
type blockDocument struct {
	Index        int                   `json:"index"`
	Timestamp    int64                 `json:"timestamp"`
	PreviousHash string                `json:"previous_hash"`
	Nonce        uint64                `json:"nonce"`
	Hash         string                `json:"hash"`
	Difficulty   int                   `json:"difficulty"`
	Transactions []transactionDocument `json:"transactions"`
}

// document is the top-level persisted layout of a ledger save file.
type document struct {
	Difficulty   int                   `json:"difficulty"`
	MiningReward int64                 `json:"mining_reward"`
	Accounts     []string              `json:"accounts"`
	Blocks       []blockDocument       `json:"blocks"`
	Pending      []transactionDocument `json:"pending"`
}

// encode serializes a ledger snapshot into the indented JSON document.
func encode(snap ledger.Snapshot) ([]byte, error) {
	doc := document{
		Difficulty:   snap.Difficulty,
		MiningReward: snap.Reward,
		Accounts:     snap.Accounts,
		Blocks:       make([]blockDocument, 0, len(snap.Blocks)),
		Pending:      encodeTransactions(snap.Pending),
	}

	for _, b := range snap.Blocks {
		doc.Blocks = append(doc.Blocks, blockDocument{
			Index:        b.Index,
			Timestamp:    b.Timestamp,
			PreviousHash: b.PreviousHash,
			Nonce:        b.Nonce,
			Hash:         b.Hash,
			Difficulty:   b.Difficulty,
			Transactions: encodeTransactions(b.Transactions),
		})
	}

	return json.MarshalIndent(doc, "", "  ")
}

// decode parses a JSON document back into a ledger snapshot. Malformed JSON
// is reported as ErrCorruptSaveFile; semantic validation of the
// reconstructed chain happens in ledger.Restore.
func decode(data []byte) (ledger.Snapshot, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return ledger.Snapshot{}, errors.Join(ErrCorruptSaveFile, err)
	}

	snap := ledger.Snapshot{
		Difficulty: doc.Difficulty,
		Reward:     doc.MiningReward,
		Accounts:   doc.Accounts,
		Blocks:     make([]ledger.Block, 0, len(doc.Blocks)),
		Pending:    decodeTransactions(doc.Pending),
	}

	for _, b := range doc.Blocks {
		snap.Blocks = append(snap.Blocks, ledger.Block{
			Index:        b.Index,
			Timestamp:    b.Timestamp,
			PreviousHash: b.PreviousHash,
			Nonce:        b.Nonce,
			Hash:         b.Hash,
			Difficulty:   b.Difficulty,
			Transactions: decodeTransactions(b.Transactions),
		})
	}

	return snap, nil
}

func encodeTransactions(txs []ledger.Transaction) []transactionDocument {
	out := make([]transactionDocument, 0, len(txs))
	for _, tx := range txs {
		out = append(out, transactionDocument{
			Sender:    tx.Sender,
			Recipient: tx.Recipient,
			Amount:    tx.Amount,
			Note:      tx.Note,
			Timestamp: tx.Timestamp,
		})
	}

	return out
}

func decodeTransactions(docs []transactionDocument) []ledger.Transaction {
	out := make([]ledger.Transaction, 0, len(docs))
	for _, doc := range docs {
		out = append(out, ledger.Transaction{
			Sender:    doc.Sender,
			Recipient: doc.Recipient,
			Amount:    doc.Amount,
			Note:      doc.Note,
			Timestamp: doc.Timestamp,
		})
	}

	return out
}
