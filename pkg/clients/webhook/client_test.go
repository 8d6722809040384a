package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/hooks/report", time.Second)
	err := client.Send(context.Background(), Message{Event: "utilization.report", Text: "all good", Data: map[string]int{"units": 3}})
	require.NoError(t, err)

	assert.Equal(t, "utilization.report", got.Event)
	assert.Equal(t, "all good", got.Text)
	assert.Equal(t, map[string]any{"units": 3.0}, got.Data)
}

func TestSendReportsHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"message":"upstream down"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second).Send(context.Background(), Message{Text: "x"})
	assert.EqualError(t, err, "webhook error: code=502, message=upstream down")
}

func TestSendHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewClient(srv.URL, 0).Send(ctx, Message{Text: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
