package scheduleboard

import "errors"

var (
	// ErrNotLoaded возвращается, если неделя ещё не загружена
	ErrNotLoaded = errors.New("scheduleboard: week not loaded")

	// ErrBookingNotOnBoard возвращается, если бронирования нет в загруженной неделе
	ErrBookingNotOnBoard = errors.New("scheduleboard: booking is not on the board")

	// ErrMedicNotOnBoard возвращается, если медика нет в пуле доски
	ErrMedicNotOnBoard = errors.New("scheduleboard: medic is not on the board")
)
