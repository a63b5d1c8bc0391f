package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "envhunter-test", r.Header.Get("User-Agent"))
		assert.Empty(t, r.Header.Get("Authorization"), "raw content is fetched without credentials")
		fmt.Fprint(w, "DB_TOKEN=abc\n")
	}))
	defer server.Close()

	c := New(Config{UserAgent: "envhunter-test"})
	body, err := c.Fetch(context.Background(), server.URL+"/o/r/main/.env")

	require.NoError(t, err)
	assert.Equal(t, "DB_TOKEN=abc\n", body)
}

func TestClient_Fetch_Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "404: Not Found", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := New(Config{}).Fetch(context.Background(), server.URL+"/missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestClient_Fetch_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := New(Config{}).Fetch(context.Background(), url+"/.env")
	assert.Error(t, err)
}

func TestClient_Fetch_InvalidURL(t *testing.T) {
	_, err := New(Config{}).Fetch(context.Background(), "://bad")
	assert.Error(t, err)
}

func TestClient_Fetch_MaxFileSize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, strings.Repeat("x", 100))
	}))
	defer server.Close()

	body, err := New(Config{MaxFileSize: 10}).Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Len(t, body, 10)
}

func TestClient_Fetch_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{}).Fetch(ctx, server.URL)
	assert.ErrorIs(t, err, context.Canceled)
}
