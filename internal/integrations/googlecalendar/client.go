package googlecalendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
)

const (
	serviceName = "google_calendar"

	// ScopeFreeBusy единственный scope, который нужен для проверки занятости
	ScopeFreeBusy = "https://www.googleapis.com/auth/calendar.freebusy"
)

// Config параметры клиента
type Config struct {
	ClientID      string
	ClientSecret  string
	Timeout       time.Duration
	RefreshWindow time.Duration
	Endpoint      string // пусто - публичный Calendar API
	TokenURL      string // пусто - google.Endpoint
}

// Client клиент free/busy проверки Google Calendar
type Client struct {
	oauthConfig   *oauth2.Config
	endpoint      string
	timeout       time.Duration
	refreshWindow time.Duration
	tokens        TokenStore
	timeProvider  TimeProvider
	metrics       MetricsRecorder
	log           Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(cfg Config, tokens TokenStore, timeProvider TimeProvider, metrics MetricsRecorder, log Logger) *Client {
	endpoint := google.Endpoint
	if cfg.TokenURL != "" {
		endpoint = oauth2.Endpoint{TokenURL: cfg.TokenURL, AuthStyle: oauth2.AuthStyleInParams}
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if timeProvider == nil {
		timeProvider = RealTimeProvider{}
	}

	return &Client{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
			Scopes:       []string{ScopeFreeBusy},
		},
		endpoint:      cfg.Endpoint,
		timeout:       cfg.Timeout,
		refreshWindow: cfg.RefreshWindow,
		tokens:        tokens,
		timeProvider:  timeProvider,
		metrics:       metrics,
		log:           log,
	}
}

// FreeBusy читает занятость медика в окне смены.
// Токен, истекающий в пределах RefreshWindow, обновляется и сохраняется заранее.
func (c *Client) FreeBusy(ctx context.Context, medic *domain.Medic, window domain.ShiftWindow) Result {
	if medic == nil || !medic.Calendar.Connected() {
		return unavailable("calendar not connected")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// 1. Актуальный токен
	token, err := c.token(ctx, medic)
	if err != nil {
		c.log.Warn("FreeBusy: medic=%s token refresh failed: %v", medic.ID, err)
		c.record("unavailable")
		return unavailable(fmt.Sprintf("token refresh failed: %v", err))
	}

	// 2. Calendar API поверх OAuth клиента
	opts := []option.ClientOption{option.WithHTTPClient(oauth2.NewClient(ctx, oauth2.StaticTokenSource(token)))}
	if c.endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.endpoint))
	}

	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		c.log.Error("FreeBusy: medic=%s failed to create calendar service: %v", medic.ID, err)
		c.record("unavailable")
		return unavailable(fmt.Sprintf("calendar service: %v", err))
	}

	// 3. Запрос занятости
	calendarID := medic.Calendar.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	resp, err := svc.Freebusy.Query(&calendar.FreeBusyRequest{
		TimeMin: window.Start.Format(time.RFC3339),
		TimeMax: window.End.Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: calendarID}},
	}).Context(ctx).Do()
	if err != nil {
		c.log.Warn("FreeBusy: medic=%s free/busy query failed: %v", medic.ID, err)
		c.record("unavailable")
		return unavailable(fmt.Sprintf("free/busy query: %v", err))
	}

	// 4. Разбор ответа
	cal, ok := resp.Calendars[calendarID]
	if !ok {
		c.record("unavailable")
		return unavailable("calendar missing from free/busy response")
	}
	if len(cal.Errors) > 0 {
		c.record("unavailable")
		return unavailable(fmt.Sprintf("calendar error: %s", cal.Errors[0].Reason))
	}

	busy := make([]BusyInterval, 0, len(cal.Busy))
	for _, period := range cal.Busy {
		start, errStart := time.Parse(time.RFC3339, period.Start)
		end, errEnd := time.Parse(time.RFC3339, period.End)
		if errStart != nil || errEnd != nil {
			c.log.Warn("FreeBusy: medic=%s skipping malformed busy period %s - %s", medic.ID, period.Start, period.End)
			continue
		}
		busy = append(busy, BusyInterval{Start: start, End: end})
	}

	c.record("ok")
	return Result{Status: StatusChecked, Busy: busy}
}

func (c *Client) token(ctx context.Context, medic *domain.Medic) (*oauth2.Token, error) {
	conn := medic.Calendar
	if !conn.NeedsRefresh(c.timeProvider.Now(), c.refreshWindow) {
		return &oauth2.Token{
			AccessToken:  conn.AccessToken,
			RefreshToken: conn.RefreshToken,
			Expiry:       conn.TokenExpiry,
			TokenType:    "Bearer",
		}, nil
	}

	// Без access token TokenSource всегда идёт на token endpoint
	token, err := c.oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: conn.RefreshToken}).Token()
	if err != nil {
		return nil, err
	}

	if c.tokens != nil {
		if err := c.tokens.UpdateCalendarToken(ctx, medic.ID, token.AccessToken, token.RefreshToken, token.Expiry); err != nil {
			c.log.Warn("FreeBusy: medic=%s failed to persist refreshed token: %v", medic.ID, err)
		}
	}

	return token, nil
}

func (c *Client) record(result string) {
	if c.metrics != nil {
		c.metrics.ExternalCall(serviceName, result)
	}
}
