package traveltime

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("traveltime client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("traveltime client: invalid response")

	// ErrRouteNotFound возвращается, когда сервис не смог построить маршрут
	ErrRouteNotFound = errors.New("traveltime client: route not found")
)
