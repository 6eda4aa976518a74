package repository

import (
	"context"
	"database/sql"
	"time"

	"hvac_monitor/internal/models"
)

type EventRepo interface {
	Append(ctx context.Context, e models.DeviceEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.DeviceEvent, error)
}

type ReadingRepo interface {
	Save(ctx context.Context, r models.Reading) error
	List(ctx context.Context, from, to time.Time, limit int) ([]models.Reading, error)
}

type Repository struct {
	EventRepo   EventRepo
	ReadingRepo ReadingRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		EventRepo:   NewEventSQLite(db),
		ReadingRepo: NewReadingSQLite(db),
	}
}
