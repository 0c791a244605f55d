package posts

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm/clause"

	"skyscraper/internal/core"
	"skyscraper/internal/persistence"
)

type Repository struct {
	Logger *slog.Logger
	DB     *persistence.DB
}

func (r *Repository) Init(_ context.Context) error {
	r.Logger = r.Logger.With("component", "posts.Repository")
	return nil
}

// Upsert writes the payload as a single conditional insert keyed on the
// at-uri. On conflict only the interaction counters and the indexed
// timestamp are refreshed; text, author and creation time stay as first
// recorded. The profile reference must already exist: callers resolve the
// author first.
func (r *Repository) Upsert(ctx context.Context, fields core.PostFields) (*core.PostModel, error) {
	if fields.URI == "" {
		return nil, fmt.Errorf("%w: post uri", core.ErrMissingKey)
	}
	if !fields.ProfileID.IsValue() {
		return nil, fmt.Errorf("%w: post profile reference", core.ErrMissingKey)
	}

	onConflict := clause.OnConflict{
		Columns: []clause.Column{{Name: "uri"}},
	}
	if assignments := fields.Assignments(); len(assignments) > 0 {
		onConflict.DoUpdates = clause.Assignments(assignments)
	} else {
		onConflict.DoNothing = true
	}

	row := fields.Row()
	err := r.DB.Model(&core.PostModel{}).
		WithContext(ctx).
		Clauses(onConflict).
		Create(&row).Error
	if err != nil {
		return nil, err
	}

	var post core.PostModel
	err = r.DB.Model(&core.PostModel{}).
		WithContext(ctx).
		Where("uri = ?", fields.URI).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Search runs a substring match over locally mirrored post text, optionally
// narrowed to one author.
func (r *Repository) Search(ctx context.Context, authorDID, query string) ([]core.PostModel, error) {
	q := r.DB.Model(&core.PostModel{}).
		WithContext(ctx).
		Where("text LIKE ?", "%"+query+"%")
	if authorDID != "" {
		q = q.Where("author_did = ?", authorDID)
	}

	var posts []core.PostModel
	err := q.Order("created_at desc").Find(&posts).Error
	return posts, err
}
