package assignmentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
)

// Client клиент HTTP API сервиса назначений (доска расписания, CLI)
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

// GetWeek получает медиков и смены ISO недели, содержащей date
func (c *Client) GetWeek(ctx context.Context, date time.Time) (*Week, error) {
	query := url.Values{"week": {date.Format(domain.DateFormat)}}

	var resp weekResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/schedule-board?"+query.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	week, err := resp.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return week, nil
}

// CheckConflicts запрашивает отчёт о конфликтах для пары (медик, бронирование)
func (c *Client) CheckConflicts(ctx context.Context, check ConflictCheck) (*domain.ConflictReport, error) {
	var resp conflictReport
	if err := c.do(ctx, http.MethodPost, "/api/v1/conflicts/check", check, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

// Assign назначает медика вручную. version - версия бронирования, которую видел клиент
func (c *Client) Assign(ctx context.Context, bookingID, medicID uuid.UUID, overrideWarnings bool, version *int64) (*Assignment, error) {
	body := assignRequest{
		MedicID:          medicID,
		OverrideWarnings: overrideWarnings,
		Version:          version,
	}

	var resp assignResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/bookings/"+bookingID.String()+"/assign", body, &resp); err != nil {
		return nil, err
	}

	return &Assignment{
		BookingID: resp.BookingID,
		MedicID:   resp.MedicID,
		Status:    domain.BookingStatus(resp.Status),
		Version:   resp.Version,
		Report:    resp.Conflicts.toDomain(),
	}, nil
}

// AutoAssign запускает автоназначение бронирования
func (c *Client) AutoAssign(ctx context.Context, bookingID uuid.UUID) (*AutoAssignResult, error) {
	var resp AutoAssignResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/bookings/"+bookingID.String()+"/auto-assign", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("AssignmentAPI %s %s unreachable: %v", method, path, err)
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, readError(resp.Body).Error)
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, readError(resp.Body).Error)
	case resp.StatusCode == http.StatusConflict:
		return rejected(readError(resp.Body))
	case resp.StatusCode >= http.StatusInternalServerError:
		errResp := readError(resp.Body)
		c.log.Error("AssignmentAPI %s %s failed: status=%d, error=%s", method, path, resp.StatusCode, errResp.Error)
		return fmt.Errorf("%w: status %d: %s", ErrServiceUnavailable, resp.StatusCode, errResp.Error)
	default:
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(data))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

func readError(r io.Reader) ErrorResponse {
	var errResp ErrorResponse
	_ = json.NewDecoder(r).Decode(&errResp)
	return errResp
}

func rejected(errResp ErrorResponse) error {
	rej := &RejectedError{Message: errResp.Error}
	if len(errResp.Details) > 0 {
		var report conflictReport
		if err := json.Unmarshal(errResp.Details, &report); err == nil {
			rej.Report = report.toDomain()
		}
	}
	return rej
}
