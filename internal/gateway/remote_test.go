package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cygnus-aran/serverless-card-sub004/internal/gateway"
	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

func TestHTTPInvoker(t *testing.T) {
	t.Run("posts payload and returns body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/usrv-card-redeban-charge-test", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ref-1", body["referencia"])

			w.Write([]byte(`{"response_code":"000","ticket_number":"1"}`))
		}))
		defer srv.Close()

		invoker := gateway.NewHTTPInvoker(srv.URL, nil, zap.NewNop())
		raw, err := invoker.Invoke(context.Background(), "usrv-card-redeban-charge-test",
			map[string]any{"referencia": "ref-1"})
		require.NoError(t, err)

		var resp types.AurusResponse
		require.NoError(t, json.Unmarshal(raw, &resp))
		assert.True(t, resp.Approved())
	})

	t.Run("structured downstream error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"code":"600","message":"declined","metadata":{"response_code":"600","response_text":"declined"}}`))
		}))
		defer srv.Close()

		invoker := gateway.NewHTTPInvoker(srv.URL, nil, zap.NewNop())
		_, err := invoker.Invoke(context.Background(), "fn", nil)

		var remote *types.RemoteError
		require.ErrorAs(t, err, &remote)
		assert.Equal(t, "600", remote.Code)
		assert.Equal(t, "600", remote.Metadata.ResponseCode)
	})

	t.Run("runtime failure reads as unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		invoker := gateway.NewHTTPInvoker(srv.URL, nil, zap.NewNop())
		_, err := invoker.Invoke(context.Background(), "fn", nil)

		var remote *types.RemoteError
		require.ErrorAs(t, err, &remote)
		assert.Equal(t, "012", remote.Code)
	})

	t.Run("transport failure reads as unreachable", func(t *testing.T) {
		invoker := gateway.NewHTTPInvoker("http://127.0.0.1:1", nil, zap.NewNop())
		_, err := invoker.Invoke(context.Background(), "fn", nil)

		var remote *types.RemoteError
		require.ErrorAs(t, err, &remote)
		assert.Equal(t, "012", remote.Code)
	})

	t.Run("expired budget surfaces deadline", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		invoker := gateway.NewHTTPInvoker(srv.URL, nil, zap.NewNop())
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := invoker.Invoke(ctx, "fn", nil)
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})

	t.Run("unstructured rejection", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte("nope"))
		}))
		defer srv.Close()

		invoker := gateway.NewHTTPInvoker(srv.URL, nil, zap.NewNop())
		_, err := invoker.Invoke(context.Background(), "fn", nil)

		var remote *types.RemoteError
		require.ErrorAs(t, err, &remote)
		assert.Equal(t, "E500", remote.Code)
	})
}
