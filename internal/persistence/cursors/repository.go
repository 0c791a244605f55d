package cursors

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skyscraper/internal/core"
	"skyscraper/internal/persistence"
)

// Repository stores stream resume points so a restarted watch picks up
// where the previous run stopped.
type Repository struct {
	Logger *slog.Logger
	DB     *persistence.DB
}

func (r *Repository) Init(_ context.Context) error {
	r.Logger = r.Logger.With("component", "cursors.Repository")
	return nil
}

// Get returns the stored cursor for service, or zero when none was saved.
func (r *Repository) Get(ctx context.Context, service string) (int64, error) {
	var row core.CursorModel
	err := r.DB.Model(&core.CursorModel{}).
		WithContext(ctx).
		Where("service = ?", service).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.Cursor, nil
}

func (r *Repository) Put(ctx context.Context, service string, cursor int64) error {
	row := core.CursorModel{Service: service, Cursor: cursor}
	return r.DB.Model(&core.CursorModel{}).
		WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "service"}},
			DoUpdates: clause.Assignments(map[string]any{"cursor": cursor}),
		}).
		Create(&row).Error
}
