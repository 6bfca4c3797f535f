package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cygnus-aran/serverless-card-sub004/internal/config"
	"github.com/cygnus-aran/serverless-card-sub004/internal/gateway"
	"github.com/cygnus-aran/serverless-card-sub004/internal/metrics"
	"github.com/cygnus-aran/serverless-card-sub004/internal/provider"
	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
	"github.com/cygnus-aran/serverless-card-sub004/internal/void"
)

type stubRemote struct {
	invoke func(ctx context.Context, functionName string, payload any) (json.RawMessage, error)
}

func (s *stubRemote) Invoke(ctx context.Context, functionName string, payload any) (json.RawMessage, error) {
	return s.invoke(ctx, functionName, payload)
}

type stubQueue struct{}

func (stubQueue) Put(ctx context.Context, topic, key string, payload any) (bool, error) {
	return true, nil
}

type stubGuard struct{}

func (stubGuard) Acquire(ctx context.Context, reference string) (bool, error) {
	return true, nil
}

type stubExecutor struct{}

func (stubExecutor) Void(ctx context.Context, tx types.Transaction) error {
	return nil
}

func testEngine(t *testing.T, remote gateway.RemoteInvoker) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Stage:            "test",
		Region:           "us-east-1",
		DefaultTimeoutMs: 1000,
		TransactionTable: "test-card-transactions",
		VoidTopic:        "card-automatic-void",
		AlertTopic:       "card-void-alerts",
	}
	logger := zap.NewNop()
	m := metrics.NewNop()

	store, err := gateway.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	deps := provider.Deps{
		Remote:  remote,
		Store:   store,
		Tokens:  provider.NewTokenIssuer(remote, cfg, logger),
		Config:  cfg,
		Logger:  logger,
		Metrics: m,
	}
	voids, err := void.NewService(cfg, store, stubQueue{}, stubGuard{}, stubExecutor{}, logger, m)
	require.NoError(t, err)

	srv := &server{
		cfg:      cfg,
		logger:   logger,
		registry: provider.NewRegistry(cfg, provider.NewAll(deps)...),
		voids:    voids,
	}
	engine := gin.New()
	srv.routes(engine, prometheus.NewRegistry())
	return engine
}

func post(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)
	return rec
}

func chargeBody(processor types.ProcessorName) string {
	body, _ := json.Marshal(types.ChargeInput{
		Amount: types.Amount{SubtotalTaxable: 100, VAT: 12, Currency: "USD"},
		Merchant: types.MerchantInfo{PublicID: "merchant-1"},
		Token: types.CardToken{
			Bin:                  "424242",
			LastFourDigits:       "4242",
			VaultToken:           "vault-1",
			TransactionReference: "ref-1",
		},
		Processor: types.ProcessorInfo{Name: processor},
	})
	return string(body)
}

func TestHealth(t *testing.T) {
	engine := testEngine(t, &stubRemote{})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestChargeRoute(t *testing.T) {
	t.Run("approved", func(t *testing.T) {
		remote := &stubRemote{
			invoke: func(ctx context.Context, functionName string, payload any) (json.RawMessage, error) {
				return json.RawMessage(`{"response_code":"000","ticket_number":"181063568837500421"}`), nil
			},
		}
		rec := post(testEngine(t, remote), "/card/charge", chargeBody(types.ProcessorRedeban))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp types.AurusResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Approved())
	})

	t.Run("decline maps to 400 with canonical body", func(t *testing.T) {
		remote := &stubRemote{
			invoke: func(ctx context.Context, functionName string, payload any) (json.RawMessage, error) {
				return nil, &types.RemoteError{
					Code:    "600",
					Message: "declined",
					Metadata: types.RemoteErrorMetadata{
						ResponseCode: "600",
						ResponseText: "declined",
					},
				}
			},
		}
		rec := post(testEngine(t, remote), "/card/charge", chargeBody(types.ProcessorRedeban))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var ae types.AurusError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ae))
		assert.Equal(t, "600", ae.Code)
		assert.Equal(t, string(types.ProcessorRedeban), ae.Metadata.ProcessorName)
	})

	t.Run("timeout maps to 504", func(t *testing.T) {
		remote := &stubRemote{
			invoke: func(ctx context.Context, functionName string, payload any) (json.RawMessage, error) {
				return nil, context.DeadlineExceeded
			},
		}
		rec := post(testEngine(t, remote), "/card/charge", chargeBody(types.ProcessorRedeban))
		require.Equal(t, http.StatusGatewayTimeout, rec.Code)

		var ae types.AurusError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ae))
		assert.Equal(t, types.CodeTimeout, ae.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := post(testEngine(t, &stubRemote{}), "/card/charge", `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUnsupportedOperationRoute(t *testing.T) {
	capture, _ := json.Marshal(types.CaptureInput{
		Processor: types.ProcessorInfo{Name: types.ProcessorBillpocket},
		Transaction: types.Transaction{
			TransactionReference: "ref-1",
			TicketNumber:         "1",
		},
	})
	rec := post(testEngine(t, &stubRemote{}), "/card/capture", string(capture))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var ae types.AurusError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ae))
	assert.Equal(t, types.CodeUnsupported, ae.Code)
}

func TestVoidEventRoute(t *testing.T) {
	t.Run("valid event", func(t *testing.T) {
		event, _ := json.Marshal(void.Event{
			TransactionID:        "tx-1",
			TransactionReference: "ref-1",
			MerchantID:           "merchant-1",
			ProcessorName:        types.ProcessorKushkiAcq,
			ApprovedAmount:       100,
			Currency:             "USD",
		})
		rec := post(testEngine(t, &stubRemote{}), "/void/event", string(event))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"processed":true`)
	})

	t.Run("invalid event", func(t *testing.T) {
		rec := post(testEngine(t, &stubRemote{}), "/void/event", `{"transactionId":"tx-1"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), `"processed":false`)
	})
}

func TestSweepRoute(t *testing.T) {
	rec := post(testEngine(t, &stubRemote{}), "/void/sweep", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var report void.BatchReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Zero(t, report.Examined)
}

func TestSweepDeferredRoute(t *testing.T) {
	t.Run("requires a card type", func(t *testing.T) {
		rec := post(testEngine(t, &stubRemote{}), "/void/sweep/deferred", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("debit sweep", func(t *testing.T) {
		rec := post(testEngine(t, &stubRemote{}), "/void/sweep/deferred", `{"cardType":"debit"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestResolveFailureRoute(t *testing.T) {
	rec := post(testEngine(t, &stubRemote{}), "/card/charge", chargeBody("Acme Processor"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
