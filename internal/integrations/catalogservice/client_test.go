package catalogservice

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

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGetQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/internal/catalog/quote", r.URL.Path)

		var req quoteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(7), req.ServiceID)

		_ = json.NewEncoder(w).Encode(Quote{
			ServiceID:       7,
			ServiceName:     "Генеральная уборка",
			Price:           4500,
			DurationMinutes: 120,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, nopLogger{})

	quote, err := client.GetQuote(context.Background(), 7, []int64{1, 2}, 55.5)
	require.NoError(t, err)
	assert.Equal(t, "Генеральная уборка", quote.ServiceName)
	assert.Equal(t, 120, quote.DurationMinutes)
}

func TestGetQuote_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, nopLogger{})

	_, err := client.GetQuote(context.Background(), 999, nil, 0)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGetQuote_BadRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, nopLogger{})

	_, err := client.GetQuote(context.Background(), 7, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGetQuoteWithGracefulDegradation(t *testing.T) {
	// Услуга не найдена - бизнес-ошибка пробрасывается как есть
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer notFound.Close()

	client := NewClient(notFound.URL, time.Second, nopLogger{})
	_, err := client.GetQuoteWithGracefulDegradation(context.Background(), 999, nil, 0)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	// Сервис недоступен - graceful degradation
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	client = NewClient(broken.URL, time.Second, nopLogger{})
	_, err = client.GetQuoteWithGracefulDegradation(context.Background(), 7, nil, 0)
	assert.ErrorIs(t, err, ErrServiceDegraded)
}
