package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/sentimind/internal/common"
	"github.com/Veraticus/sentimind/internal/model"
)

var testTaxonomy = model.Taxonomy{"Alegría", "Tristeza", "Enojo"}

const testTemplate = "Este texto expresa {}"

// scriptedServer replies with the given handlers in order, repeating the last one.
func scriptedServer(t *testing.T, handlers ...http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(calls.Add(1)) - 1
		if n >= len(handlers) {
			n = len(handlers) - 1
		}
		handlers[n](w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func status(code int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	}
}

const okBody = `{"sequence":"hola","labels":["Tristeza","Alegría","Enojo"],"scores":[0.2,0.9,0.1]}`

func newTestClient(t *testing.T, srv *httptest.Server, mutate func(*Config)) *Client {
	t.Helper()
	cfg := Config{
		HTTPClient:       srv.Client(),
		URL:              srv.URL,
		Timeout:          2 * time.Second,
		RetryDelay:       time.Millisecond,
		RateLimitWait:    time.Millisecond,
		MaxColdStartWait: 5 * time.Millisecond,
		MaxRetries:       3,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	client, err := NewClient(cfg, common.Discard())
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "defaults", config: Config{}},
		{name: "custom url", config: Config{URL: "http://localhost:8080/models/x"}},
		{name: "relative url", config: Config{URL: "/models/x"}, wantErr: true},
		{name: "garbage url", config: Config{URL: "::not a url"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.config, nil)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ProviderName, client.Name())
			assert.Equal(t, model.MethodRemoteAPI, client.Method())
			assert.Equal(t, 3, client.cfg.MaxRetries)
			assert.Equal(t, 30*time.Second, client.cfg.Timeout)
		})
	}
}

func TestClient_Classify_Success(t *testing.T) {
	srv, calls := scriptedServer(t, status(http.StatusOK, okBody))
	client := newTestClient(t, srv, nil)

	scores, err := client.Classify(context.Background(), "hola", testTaxonomy, testTemplate)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	require.Len(t, scores, 3)
	assert.Equal(t, "Alegría", scores[0].Name)
	assert.InDelta(t, 0.9, scores[0].Score, 1e-9)
	assert.Equal(t, "Tristeza", scores[1].Name)
	assert.Equal(t, "Enojo", scores[2].Name)
	assert.True(t, scores.IsSorted())
}

func TestClient_Classify_RequestShape(t *testing.T) {
	var (
		mu      sync.Mutex
		got     inferenceRequest
		headers http.Header
	)
	srv, _ := scriptedServer(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		headers = r.Header.Clone()
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		status(http.StatusOK, okBody)(w, r)
	})

	t.Run("with token", func(t *testing.T) {
		client := newTestClient(t, srv, func(c *Config) { c.Token = "hf_secret" })
		_, err := client.Classify(context.Background(), "me siento bien", testTaxonomy, testTemplate)
		require.NoError(t, err)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, "Bearer hf_secret", headers.Get("Authorization"))
		assert.Equal(t, "application/json", headers.Get("Content-Type"))
		assert.Equal(t, "me siento bien", got.Inputs)
		assert.Equal(t, []string(testTaxonomy), got.Parameters.CandidateLabels)
		assert.Equal(t, testTemplate, got.Parameters.HypothesisTemplate)
		assert.True(t, got.Parameters.MultiLabel)
	})

	t.Run("without token", func(t *testing.T) {
		client := newTestClient(t, srv, nil)
		_, err := client.Classify(context.Background(), "hola", testTaxonomy, testTemplate)
		require.NoError(t, err)

		mu.Lock()
		defer mu.Unlock()
		assert.Empty(t, headers.Get("Authorization"))
	})
}

func TestClient_Classify_ColdStartThenSuccess(t *testing.T) {
	srv, calls := scriptedServer(t,
		status(http.StatusServiceUnavailable, `{"error":"Model is currently loading","estimated_time":20.0}`),
		status(http.StatusServiceUnavailable, `{"error":"Model is currently loading"}`),
		status(http.StatusOK, okBody),
	)
	client := newTestClient(t, srv, nil)

	start := time.Now()
	scores, err := client.Classify(context.Background(), "hola", testTaxonomy, testTemplate)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "Alegría", scores[0].Name)
	// Both waits are capped by MaxColdStartWait.
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestClient_Classify_ColdStartWait(t *testing.T) {
	srv, _ := scriptedServer(t, status(http.StatusNotFound, ``))
	client := newTestClient(t, srv, func(c *Config) {
		c.MaxColdStartWait = 10 * time.Second
	})

	tests := []struct {
		name string
		body string
		want time.Duration
	}{
		{name: "estimate under cap", body: `{"estimated_time":2.5}`, want: 2500 * time.Millisecond},
		{name: "estimate over cap", body: `{"estimated_time":120}`, want: 10 * time.Second},
		{name: "no estimate", body: `{"error":"loading"}`, want: 10 * time.Second},
		{name: "not json", body: `Service Unavailable`, want: 10 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, client.coldStartWait([]byte(tt.body)))
		})
	}
}

func TestClient_Classify_RateLimitedThenSuccess(t *testing.T) {
	srv, calls := scriptedServer(t,
		status(http.StatusTooManyRequests, `{"error":"Rate limit reached"}`),
		status(http.StatusOK, okBody),
	)
	client := newTestClient(t, srv, nil)

	_, err := client.Classify(context.Background(), "hola", testTaxonomy, testTemplate)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_Classify_ExhaustsRetries(t *testing.T) {
	srv, calls := scriptedServer(t, status(http.StatusInternalServerError, `{"error":"boom"}`))
	client := newTestClient(t, srv, nil)

	scores, err := client.Classify(context.Background(), "hola", testTaxonomy, testTemplate)
	require.Error(t, err)
	assert.Nil(t, scores)
	assert.Equal(t, int32(3), calls.Load())

	var providerErr *common.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, ProviderName, providerErr.Provider)
	assert.Equal(t, 3, providerErr.Attempts)
	assert.ErrorIs(t, err, common.ErrProviderFailed)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClient_Classify_ExhaustsOnColdStart(t *testing.T) {
	srv, calls := scriptedServer(t, status(http.StatusServiceUnavailable, `{"estimated_time":1}`))
	client := newTestClient(t, srv, func(c *Config) { c.MaxRetries = 2 })

	_, err := client.Classify(context.Background(), "hola", testTaxonomy, testTemplate)
	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.ErrorIs(t, err, common.ErrColdStart)
	assert.ErrorIs(t, err, common.ErrProviderFailed)
}

func TestClient_Classify_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{"labels":`},
		{name: "length mismatch", body: `{"labels":["Alegría","Enojo"],"scores":[0.5]}`},
		{name: "empty body", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := scriptedServer(t, status(http.StatusOK, tt.body))
			client := newTestClient(t, srv, nil)

			_, err := client.Classify(context.Background(), "hola", testTaxonomy, testTemplate)
			require.Error(t, err)
			assert.Equal(t, int32(3), calls.Load(), "malformed responses are retried")

			var providerErr *common.ProviderError
			assert.ErrorAs(t, err, &providerErr)
		})
	}
}

func TestClient_Classify_UnknownLabelsDropped(t *testing.T) {
	t.Run("partially unknown", func(t *testing.T) {
		srv, _ := scriptedServer(t, status(http.StatusOK,
			`{"labels":["Nostalgia","Enojo","Alegría"],"scores":[0.99,0.4,0.3]}`))
		client := newTestClient(t, srv, nil)

		scores, err := client.Classify(context.Background(), "hola", testTaxonomy, testTemplate)
		require.NoError(t, err)
		require.Len(t, scores, 2)
		assert.Equal(t, "Enojo", scores[0].Name)
		assert.Equal(t, "Alegría", scores[1].Name)
	})

	t.Run("all unknown", func(t *testing.T) {
		srv, calls := scriptedServer(t, status(http.StatusOK,
			`{"labels":["Nostalgia"],"scores":[0.99]}`))
		client := newTestClient(t, srv, nil)

		_, err := client.Classify(context.Background(), "hola", testTaxonomy, testTemplate)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrEmptyResult)
		assert.Equal(t, int32(1), calls.Load(), "an empty result is not retried")
	})
}

func TestClient_Classify_ListShapedResponse(t *testing.T) {
	srv, _ := scriptedServer(t, status(http.StatusOK,
		`[{"label":"Enojo","score":0.7},{"label":"Tristeza","score":0.7},{"label":"Alegría","score":0.1}]`))
	client := newTestClient(t, srv, nil)

	scores, err := client.Classify(context.Background(), "hola", testTaxonomy, testTemplate)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	// Ties keep taxonomy order.
	assert.Equal(t, "Tristeza", scores[0].Name)
	assert.Equal(t, "Enojo", scores[1].Name)
	assert.Equal(t, "Alegría", scores[2].Name)
}

func TestClient_Classify_AttemptTimeout(t *testing.T) {
	release := make(chan struct{})
	srv, calls := scriptedServer(t,
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.Copy(io.Discard, r.Body)
			select {
			case <-r.Context().Done():
			case <-release:
			}
		},
		status(http.StatusOK, okBody),
	)
	// Registered after the server so it runs before srv.Close.
	t.Cleanup(func() { close(release) })
	client := newTestClient(t, srv, func(c *Config) { c.Timeout = 50 * time.Millisecond })

	scores, err := client.Classify(context.Background(), "hola", testTaxonomy, testTemplate)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "Alegría", scores[0].Name)
}

func TestClient_Classify_ContextCanceled(t *testing.T) {
	srv, calls := scriptedServer(t, status(http.StatusServiceUnavailable, `{"estimated_time":60}`))
	client := newTestClient(t, srv, func(c *Config) { c.MaxColdStartWait = time.Minute })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.Classify(ctx, "hola", testTaxonomy, testTemplate)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestClient_Classify_Concurrent(t *testing.T) {
	srv, calls := scriptedServer(t, status(http.StatusOK, okBody))
	client := newTestClient(t, srv, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			scores, err := client.Classify(context.Background(), "hola", testTaxonomy, testTemplate)
			assert.NoError(t, err)
			assert.Len(t, scores, 3)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(10), calls.Load())
}
