package gateway_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cygnus-aran/serverless-card-sub004/internal/gateway"
	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

func newStore(t *testing.T) *gateway.SQLiteStore {
	t.Helper()
	store, err := gateway.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutAndGetItem(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	tx := types.Transaction{
		TransactionID:        "tx-1",
		TransactionReference: "ref-1",
		TransactionType:      types.TransactionCharge,
		TransactionStatus:    types.StatusApproval,
		CreatedMs:            1000,
	}
	written, err := store.Put(ctx, "qa-card-transactions", tx.TransactionID, tx, "")
	require.NoError(t, err)
	assert.True(t, written)

	doc, err := store.GetItem(ctx, "qa-card-transactions", "tx-1")
	require.NoError(t, err)
	var got types.Transaction
	require.NoError(t, json.Unmarshal(doc, &got))
	assert.Equal(t, tx, got)

	t.Run("absent key returns nil", func(t *testing.T) {
		doc, err := store.GetItem(ctx, "qa-card-transactions", "missing")
		require.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("tables are isolated", func(t *testing.T) {
		doc, err := store.GetItem(ctx, "other-table", "tx-1")
		require.NoError(t, err)
		assert.Nil(t, doc)
	})
}

func TestConditionalPut(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	record := types.TimedOutTransaction{
		TransactionReference: "ref-9",
		Processor:            types.ProcessorRedeban,
		Payload:              map[string]any{"monto": 10.0},
		CreatedMs:            2000,
	}

	written, err := store.Put(ctx, "qa-redeban-timedout-transactions", "ref-9", record, gateway.ConditionAttributeNotExists)
	require.NoError(t, err)
	assert.True(t, written, "first conditional write lands")

	record.CreatedMs = 3000
	written, err = store.Put(ctx, "qa-redeban-timedout-transactions", "ref-9", record, gateway.ConditionAttributeNotExists)
	require.NoError(t, err)
	assert.False(t, written, "second conditional write is a no-op")

	doc, err := store.GetItem(ctx, "qa-redeban-timedout-transactions", "ref-9")
	require.NoError(t, err)
	var got types.TimedOutTransaction
	require.NoError(t, json.Unmarshal(doc, &got))
	assert.Equal(t, int64(2000), got.CreatedMs, "original record survives")

	t.Run("unknown condition rejected", func(t *testing.T) {
		_, err := store.Put(ctx, "t", "k", record, "attribute_exists")
		assert.Error(t, err)
	})
}

func TestQueryByReference(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	table := "qa-card-transactions"

	put := func(id, ref string, txType types.TransactionType) {
		t.Helper()
		_, err := store.Put(ctx, table, id, types.Transaction{
			TransactionID:        id,
			TransactionReference: ref,
			TransactionType:      txType,
		}, "")
		require.NoError(t, err)
	}
	put("tx-1", "ref-a", types.TransactionPreAuthorization)
	put("tx-2", "ref-a", types.TransactionCapture)
	put("tx-3", "ref-b", types.TransactionCharge)

	docs, err := store.Query(ctx, table, gateway.IndexTransactionReference, "ref-a")
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = store.Query(ctx, table, gateway.IndexTransactionReference, "ref-missing")
	require.NoError(t, err)
	assert.Empty(t, docs)

	t.Run("unknown index rejected", func(t *testing.T) {
		_, err := store.Query(ctx, table, "bogus-index", "ref-a")
		assert.Error(t, err)
	})
}

func TestQueryByTypeAndCreated(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	table := "qa-card-transactions"

	put := func(id string, txType types.TransactionType, createdMs int64) {
		t.Helper()
		_, err := store.Put(ctx, table, id, types.Transaction{
			TransactionID:   id,
			TransactionType: txType,
			CreatedMs:       createdMs,
		}, "")
		require.NoError(t, err)
	}
	put("tx-1", types.TransactionPreAuthorization, 100)
	put("tx-2", types.TransactionPreAuthorization, 200)
	put("tx-3", types.TransactionPreAuthorization, 300)
	put("tx-4", types.TransactionCharge, 200)

	docs, err := store.QueryByTypeAndCreated(ctx, table, gateway.IndexTypeAndCreated,
		string(types.TransactionPreAuthorization), 150, 300)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	var first, second types.Transaction
	require.NoError(t, json.Unmarshal(docs[0], &first))
	require.NoError(t, json.Unmarshal(docs[1], &second))
	assert.Equal(t, "tx-2", first.TransactionID, "results ordered by created")
	assert.Equal(t, "tx-3", second.TransactionID)

	t.Run("unknown index rejected", func(t *testing.T) {
		_, err := store.QueryByTypeAndCreated(ctx, table, "bogus-index", "charge", 0, 1)
		assert.Error(t, err)
	})
}
