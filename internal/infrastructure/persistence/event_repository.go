package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shelflog/backend/internal/domain/shared"
	"github.com/shelflog/backend/internal/domain/shelf"
	"github.com/shelflog/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEventRepository implements shelf.EventRepository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GormEventRepository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// Insert appends one event. The store assigns id and created_at.
func (r *GormEventRepository) Insert(ctx context.Context, event shelf.NewEvent) (*shelf.ShelfEvent, error) {
	row := models.ShelfEventModelFromNew(event)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, shared.NewPersistenceError("insert shelf event", err)
	}
	return row.ToDomain()
}

// Query returns one window of matching events, newest first, with the
// total number of matches. Count and rows are read in one transaction so
// the total describes the same snapshot as the window.
func (r *GormEventRepository) Query(ctx context.Context, filter shelf.EventFilter) (*shelf.EventPage, error) {
	var (
		total int64
		rows  []models.ShelfEventModel
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scoped := func() *gorm.DB {
			q := tx.Model(&models.ShelfEventModel{})
			if filter.UserID != nil {
				q = q.Where("user_id = ?", *filter.UserID)
			}
			return q
		}

		if err := scoped().Count(&total).Error; err != nil {
			return shared.NewPersistenceError("count shelf events", err)
		}

		q := scoped().Order("created_at DESC").Order("id DESC")
		if filter.Limit != nil {
			q = q.Limit(*filter.Limit)
		}
		if filter.Offset != nil && *filter.Offset > 0 {
			q = q.Offset(*filter.Offset)
		}
		if err := q.Find(&rows).Error; err != nil {
			return shared.NewPersistenceError("query shelf events", err)
		}
		return nil
	}, snapshotTxOptions(r.db))
	if err != nil {
		if errors.Is(err, shared.ErrPersistence) {
			return nil, err
		}
		return nil, shared.NewPersistenceError("query shelf events", err)
	}

	events := make([]shelf.ShelfEvent, 0, len(rows))
	for i := range rows {
		ev, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return &shelf.EventPage{Rows: events, TotalCount: total}, nil
}

// snapshotTxOptions pins Postgres to one snapshot for the whole read.
// SQLite transactions are already serializable.
func snapshotTxOptions(db *gorm.DB) *sql.TxOptions {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
}

var _ shelf.EventRepository = (*GormEventRepository)(nil)
