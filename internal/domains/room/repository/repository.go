package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	bookingModel "hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/room/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/logger"
	gRepo "hotelier/shared/repository"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteWithBookings(ctx context.Context, roomID string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	bookings gRepo.Repository[bookingModel.Booking]
	db       *postgres.Connection
	otel     otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		bookings:   gRepo.NewRepository[bookingModel.Booking](bookingModel.EntityName, bookingModel.TableName, bookingModel.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// DeleteWithBookings removes a room and all of its bookings in one
// transaction. Room ownership of bookings is exclusive and cascading, so a
// partially deleted room must never be observable.
func (repo *repositoryImpl) DeleteWithBookings(ctx context.Context, roomID string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.DeleteWithBookings")
	defer scope.End()

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to begin transaction (room): %w", err)
	}

	bookingFilter := shared.FilterByID(roomID, bookingModel.FieldRoomID, bookingModel.TableName)
	if err = repo.bookings.DeleteTx(ctx, tx, bookingFilter); err != nil {
		scope.TraceError(err)

		if rbErr := tx.Rollback(); rbErr != nil {
			logger.ErrorWithStack(rbErr)
		}

		return fmt.Errorf("failed to delete bookings of room: %w", err)
	}

	roomFilter := shared.FilterByID(roomID, model.FieldID, model.TableName)
	if err = repo.DeleteTx(ctx, tx, roomFilter); err != nil {
		scope.TraceError(err)

		if rbErr := tx.Rollback(); rbErr != nil {
			logger.ErrorWithStack(rbErr)
		}

		return fmt.Errorf("failed to delete room: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to commit room deletion: %w", err)
	}

	return nil
}
