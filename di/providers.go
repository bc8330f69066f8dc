package di

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/booking/availability"
	bookingRepository "hotelier/internal/domains/booking/repository"
)

func provideAvailabilityEngine(repo bookingRepository.Booking, otl otel.Otel) *availability.Engine {
	return availability.NewEngine(repo, otl)
}
