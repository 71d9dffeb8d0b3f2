package bookingfeed

import "errors"

var (
	// ErrListen возвращается, если не удалось подписаться на канал
	ErrListen = errors.New("bookingfeed: failed to listen")

	// ErrInvalidPayload возвращается при некорректном payload уведомления
	ErrInvalidPayload = errors.New("bookingfeed: invalid payload")
)
