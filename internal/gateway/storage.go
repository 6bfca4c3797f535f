package gateway

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// Condition expressions supported by Put. A failed condition is a harmless
// no-op, not an error; idempotency lives in the storage layer rather than in
// application-level locks.
const ConditionAttributeNotExists = "attribute_not_exists"

// Index names the storage layer can query. Anything else is a wiring defect.
const (
	IndexTransactionReference = "transactionReference-index"
	IndexTypeAndCreated       = "transactionType-created-index"
)

// KeyValueStore persists and queries JSON documents by key or declared
// secondary index.
type KeyValueStore interface {
	// Put stores the item under (table, key). With
	// ConditionAttributeNotExists it only writes when the key is absent and
	// reports whether the write happened.
	Put(ctx context.Context, table, key string, item any, condition string) (bool, error)
	// GetItem returns the document stored under the key, or nil when absent.
	GetItem(ctx context.Context, table, key string) (json.RawMessage, error)
	// Query returns every document in the table whose transaction reference
	// matches, via the reference index.
	Query(ctx context.Context, table, index, value string) ([]json.RawMessage, error)
	// QueryByTypeAndCreated returns documents of the given transaction type
	// created inside [fromMs, toMs].
	QueryByTypeAndCreated(ctx context.Context, table, index, txType string, fromMs, toMs int64) ([]json.RawMessage, error)
}

// SQLiteStore implements KeyValueStore on a single generic items table. The
// logical table name is a column, the document is stored verbatim, and the
// two queryable attributes are extracted into indexed columns on write.
type SQLiteStore struct {
	db *sql.DB
}

const storageSchema = `
CREATE TABLE IF NOT EXISTS items (
	tbl        TEXT NOT NULL,
	item_key   TEXT NOT NULL,
	tx_type    TEXT,
	tx_ref     TEXT,
	created_ms INTEGER,
	doc        TEXT NOT NULL,
	PRIMARY KEY (tbl, item_key)
);
CREATE INDEX IF NOT EXISTS idx_items_ref ON items (tbl, tx_ref);
CREATE INDEX IF NOT EXISTS idx_items_type_created ON items (tbl, tx_type, created_ms);
`

// NewSQLiteStore opens (or creates) the store at the given path. Use
// ":memory:" for tests.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	if _, err := db.Exec(storageSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init storage schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// attrs are the queryable attributes lifted out of the document on write.
type attrs struct {
	TransactionType      string `json:"transactionType"`
	TransactionReference string `json:"transactionReference"`
	CreatedMs            int64  `json:"created"`
}

func (s *SQLiteStore) Put(ctx context.Context, table, key string, item any, condition string) (bool, error) {
	doc, err := json.Marshal(item)
	if err != nil {
		return false, fmt.Errorf("marshal item for %s: %w", table, err)
	}
	var a attrs
	// The document may not carry the indexed attributes; that only means it
	// cannot be found through those indexes.
	_ = json.Unmarshal(doc, &a)

	stmt := `INSERT OR REPLACE INTO items (tbl, item_key, tx_type, tx_ref, created_ms, doc) VALUES (?,?,?,?,?,?)`
	if condition == ConditionAttributeNotExists {
		stmt = `INSERT OR IGNORE INTO items (tbl, item_key, tx_type, tx_ref, created_ms, doc) VALUES (?,?,?,?,?,?)`
	} else if condition != "" {
		return false, fmt.Errorf("unsupported condition %q", condition)
	}

	res, err := s.db.ExecContext(ctx, stmt, table, key, a.TransactionType, a.TransactionReference, a.CreatedMs, string(doc))
	if err != nil {
		return false, fmt.Errorf("put item into %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("put item into %s: %w", table, err)
	}
	return affected > 0, nil
}

func (s *SQLiteStore) GetItem(ctx context.Context, table, key string) (json.RawMessage, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM items WHERE tbl = ? AND item_key = ?`, table, key).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item from %s: %w", table, err)
	}
	return json.RawMessage(doc), nil
}

func (s *SQLiteStore) Query(ctx context.Context, table, index, value string) ([]json.RawMessage, error) {
	if index != IndexTransactionReference {
		return nil, fmt.Errorf("unknown index %q on %s", index, table)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM items WHERE tbl = ? AND tx_ref = ?`, table, value)
	if err != nil {
		return nil, fmt.Errorf("query %s by reference: %w", table, err)
	}
	defer rows.Close()
	return collectDocs(rows)
}

func (s *SQLiteStore) QueryByTypeAndCreated(ctx context.Context, table, index, txType string, fromMs, toMs int64) ([]json.RawMessage, error) {
	if index != IndexTypeAndCreated {
		return nil, fmt.Errorf("unknown index %q on %s", index, table)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM items WHERE tbl = ? AND tx_type = ? AND created_ms BETWEEN ? AND ? ORDER BY created_ms`,
		table, txType, fromMs, toMs)
	if err != nil {
		return nil, fmt.Errorf("query %s by type and created: %w", table, err)
	}
	defer rows.Close()
	return collectDocs(rows)
}

func collectDocs(rows *sql.Rows) ([]json.RawMessage, error) {
	var docs []json.RawMessage
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		docs = append(docs, json.RawMessage(doc))
	}
	return docs, rows.Err()
}
