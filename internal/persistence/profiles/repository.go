package profiles

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skyscraper/internal/core"
	"skyscraper/internal/persistence"
)

type Repository struct {
	Logger *slog.Logger
	DB     *persistence.DB
}

func (r *Repository) Init(_ context.Context) error {
	r.Logger = r.Logger.With("component", "profiles.Repository")
	return nil
}

// Upsert writes the payload as a single conditional insert: a conflict on
// the DID falls through to an update of exactly the mutable columns present
// in the payload. Lookup-then-write would race a concurrent writer on the
// same DID; the conflict clause keeps the at-most-one-row invariant inside
// the store.
func (r *Repository) Upsert(ctx context.Context, fields core.ProfileFields) (*core.ProfileModel, error) {
	if fields.DID == "" {
		return nil, fmt.Errorf("%w: profile did", core.ErrMissingKey)
	}

	onConflict := clause.OnConflict{
		Columns: []clause.Column{{Name: "did"}},
	}
	if assignments := fields.Assignments(); len(assignments) > 0 {
		onConflict.DoUpdates = clause.Assignments(assignments)
	} else {
		onConflict.DoNothing = true
	}

	row := fields.Row()
	err := r.DB.Model(&core.ProfileModel{}).
		WithContext(ctx).
		Clauses(onConflict).
		Create(&row).Error
	if err != nil {
		return nil, err
	}

	return r.FindByDID(ctx, fields.DID)
}

func (r *Repository) FindByDID(ctx context.Context, did string) (*core.ProfileModel, error) {
	var profile core.ProfileModel
	err := r.DB.Model(&core.ProfileModel{}).
		WithContext(ctx).
		Where("did = ?", did).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: profile %s", core.ErrNotFound, did)
		}
		return nil, err
	}
	return &profile, nil
}

// ExistsByDID reports which of the given DIDs already have a local row.
// Chunked so a full enumeration pass does not blow the IN-clause limit.
func (r *Repository) ExistsByDID(ctx context.Context, dids ...string) (map[string]bool, error) {
	var existing []string
	for _, chunk := range lo.Chunk(dids, 500) {
		var found []string
		err := r.DB.Model(&core.ProfileModel{}).
			WithContext(ctx).
			Select("did").
			Where("did in (?)", chunk).
			Find(&found).Error
		if err != nil {
			return nil, err
		}
		existing = append(existing, found...)
	}

	return lo.Associate(existing, func(item string) (string, bool) {
		return item, true
	}), nil
}

func (r *Repository) FindByHandle(ctx context.Context, handle string) (*core.ProfileModel, error) {
	var profile core.ProfileModel
	err := r.DB.Model(&core.ProfileModel{}).
		WithContext(ctx).
		Where("handle = ?", handle).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: profile %s", core.ErrNotFound, handle)
		}
		return nil, err
	}
	return &profile, nil
}

func (r *Repository) List(ctx context.Context) ([]core.ProfileModel, error) {
	var profiles []core.ProfileModel
	err := r.DB.Model(&core.ProfileModel{}).
		WithContext(ctx).
		Order("handle").
		Find(&profiles).Error
	return profiles, err
}
