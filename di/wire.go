//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"hotelier/config"
	"hotelier/infras/kafka"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/infras/redis"
	bookingRepository "hotelier/internal/domains/booking/repository"
	bookingService "hotelier/internal/domains/booking/service"
	roomRepository "hotelier/internal/domains/room/repository"
	roomService "hotelier/internal/domains/room/service"
	bookingHandler "hotelier/internal/handlers/booking"
	roomHandler "hotelier/internal/handlers/room"
	"hotelier/internal/notification"
	"hotelier/internal/worker"
	"hotelier/shared/cache"
	"hotelier/shared/lock"
	httpTransport "hotelier/transport/http"
	"hotelier/transport/http/router"
)

var infrastructure = wire.NewSet(
	config.Get,
	postgres.New,
	redis.New,
	otel.New,
	kafka.New,
	cache.NewRedisCache,
	lock.NewKeyed,
)

var domains = wire.NewSet(
	bookingRepository.New,
	roomRepository.New,
	provideAvailabilityEngine,
	notification.New,
	bookingService.New,
	roomService.New,
)

var transport = wire.NewSet(
	bookingHandler.New,
	roomHandler.New,
	wire.Struct(new(router.DomainHandlers), "*"),
	router.NewRouter,
	worker.NewHousekeeping,
	httpTransport.New,
)

func InitializeServer() (*httpTransport.HTTP, error) {
	wire.Build(
		infrastructure,
		domains,
		transport,
	)

	return nil, nil
}
