package catalogservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с CatalogService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetQuote рассчитывает стоимость и длительность услуги с допами
func (c *Client) GetQuote(ctx context.Context, serviceID int64, extraIDs []int64, squareMeters float64) (*Quote, error) {
	url := fmt.Sprintf("%s/internal/catalog/quote", c.baseURL)

	payload, err := json.Marshal(quoteRequest{
		ServiceID:    serviceID,
		ExtraIDs:     extraIDs,
		SquareMeters: squareMeters,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid quote request", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrServiceNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var quote Quote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &quote, nil
}

// GetQuoteWithGracefulDegradation рассчитывает стоимость услуги с graceful degradation
// При недоступности CatalogService возвращает ErrServiceDegraded, что позволяет
// отклонить бронирование с понятной ошибкой вместо 500
func (c *Client) GetQuoteWithGracefulDegradation(ctx context.Context, serviceID int64, extraIDs []int64, squareMeters float64) (*Quote, error) {
	c.log.Info("Fetching quote for service_id=%d, extras=%d", serviceID, len(extraIDs))

	quote, err := c.GetQuote(ctx, serviceID, extraIDs, squareMeters)
	if err != nil {
		// Если это критичная бизнес-ошибка (услуга не найдена),
		// пробрасываем её дальше
		if err == ErrServiceNotFound {
			c.log.Info("Service not found in catalog, service_id=%d", serviceID)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга и т.д.)
		// применяем graceful degradation - возвращаем ErrServiceDegraded с контекстом
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("CatalogService unavailable, applying graceful degradation for service_id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: service_id=%d, error=%v", ErrServiceDegraded, serviceID, err)
	}

	c.log.Info("Successfully fetched quote for service_id=%d: price=%.2f, duration=%d", serviceID, quote.Price, quote.DurationMinutes)
	return quote, nil
}
