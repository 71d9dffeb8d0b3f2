package traveltime

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
)

// Client клиент сервиса оценки времени в пути
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Estimate запрашивает время в пути и расстояние между двумя почтовыми индексами
func (c *Client) Estimate(ctx context.Context, origin, destination string) (*domain.TravelEstimate, error) {
	query := url.Values{}
	query.Set("origin", origin)
	query.Set("destination", destination)
	endpoint := fmt.Sprintf("%s/v1/travel-time?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound, http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: %s -> %s", ErrRouteNotFound, origin, destination)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var payload EstimateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if payload.TravelTimeMinutes < 0 || payload.DistanceMiles < 0 {
		return nil, fmt.Errorf("%w: negative estimate %d min / %.1f mi", ErrInvalidResponse, payload.TravelTimeMinutes, payload.DistanceMiles)
	}

	return &domain.TravelEstimate{
		OriginPostcode:      origin,
		DestinationPostcode: destination,
		Minutes:             payload.TravelTimeMinutes,
		Miles:               payload.DistanceMiles,
	}, nil
}
