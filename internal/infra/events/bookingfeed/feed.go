package bookingfeed

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
)

const (
	minReconnectInterval = 2 * time.Second
	maxReconnectInterval = time.Minute
	defaultPingInterval  = 90 * time.Second
)

// Feed лента изменений бронирований поверх Postgres LISTEN/NOTIFY
type Feed struct {
	listener     Listener
	pingInterval time.Duration
	log          Logger
}

// New открывает отдельное соединение для LISTEN
func New(dsn string, log Logger) *Feed {
	listener := pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval, func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventDisconnected:
			log.Warn("BookingFeed: disconnected: %v", err)
		case pq.ListenerEventReconnected:
			log.Info("BookingFeed: reconnected")
		case pq.ListenerEventConnectionAttemptFailed:
			log.Error("BookingFeed: connection attempt failed: %v", err)
		}
	})
	return NewWithListener(listener, log)
}

// NewWithListener создает ленту поверх готового listener
func NewWithListener(listener Listener, log Logger) *Feed {
	return &Feed{
		listener:     listener,
		pingInterval: defaultPingInterval,
		log:          log,
	}
}

// Run подписывается на канал и вызывает handle на каждое изменение до отмены ctx.
// После переподключения pq присылает nil-уведомление, оно превращается в Event{Resync: true}.
func (f *Feed) Run(ctx context.Context, handle func(Event)) error {
	if err := f.listener.Listen(Channel); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrListen, Channel, err)
	}
	defer f.listener.Close()

	f.log.Info("BookingFeed: listening on %s", Channel)

	ticker := time.NewTicker(f.pingInterval)
	defer ticker.Stop()

	notifications := f.listener.NotificationChannel()
	for {
		select {
		case <-ctx.Done():
			f.log.Info("BookingFeed: stopped")
			return nil

		case n, ok := <-notifications:
			if !ok {
				return nil
			}
			if n == nil {
				handle(Event{Resync: true})
				continue
			}

			event, err := ParsePayload(n.Extra)
			if err != nil {
				f.log.Warn("BookingFeed: skipping notification: %v", err)
				continue
			}
			handle(event)

		case <-ticker.C:
			if err := f.listener.Ping(); err != nil {
				f.log.Warn("BookingFeed: ping failed: %v", err)
			}
		}
	}
}
