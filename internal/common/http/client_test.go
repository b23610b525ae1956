package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON_DecodesAndSendsParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TX", r.URL.Query().Get("school.state"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var out struct{ OK bool }
	err := NewClient(time.Second).GetJSON(context.Background(), srv.URL, url.Values{"school.state": {"TX"}}, &out)

	require.NoError(t, err)
	assert.True(t, out.OK)
}

func TestGetJSON_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "API_KEY_INVALID", http.StatusForbidden)
	}))
	defer srv.Close()

	err := NewClient(time.Second).GetJSON(context.Background(), srv.URL, nil, &struct{}{})

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "API_KEY_INVALID")
}

func TestGetJSON_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	err := NewClient(20*time.Millisecond).GetJSON(context.Background(), srv.URL, nil, &struct{}{})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.True(t, IsTimeout(err))
}
