package matching

import "github.com/m04kA/SMC-AssignmentService/internal/domain"

// Weights коэффициенты факторов оценки кандидата.
// Максимум суммы: 40 + 25 + 15 + 20 + 10 = 110.
type Weights struct {
	DistanceMax             float64 // очки при нулевом времени в пути
	DistanceMinutesPerPoint float64 // сколько минут пути "съедают" одно очко

	UtilizationMax float64 // очки при полностью свободной неделе
	WorkingDays    int     // дней в рабочей неделе для процента загрузки

	QualificationsBase float64 // любой активный медик
	QualificationCert  float64 // за каждый сертификат

	RatingPerStar float64
	UnratedRating float64 // ниже максимума, чтобы новички не обходили проверенных

	TerritoryPrimary   float64
	TerritorySecondary float64
}

// DefaultWeights веса по умолчанию
func DefaultWeights() Weights {
	return Weights{
		DistanceMax:             40,
		DistanceMinutesPerPoint: 2,
		UtilizationMax:          25,
		WorkingDays:             domain.WorkingDaysPerWeek,
		QualificationsBase:      5,
		QualificationCert:       5,
		RatingPerStar:           4,
		UnratedRating:           15,
		TerritoryPrimary:        10,
		TerritorySecondary:      5,
	}
}

// TravelFallback консервативная оценка пути, если сервис оценки недоступен
type TravelFallback struct {
	Minutes int
	Miles   float64
}

// DefaultTravelFallback 60 минут / 30 миль
func DefaultTravelFallback() TravelFallback {
	return TravelFallback{Minutes: 60, Miles: 30}
}
