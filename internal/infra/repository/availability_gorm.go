package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/elinspetor87/ai-vision-studio-sub000/internal/domain/availability"
	"github.com/elinspetor87/ai-vision-studio-sub000/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *AvailabilityGormRepository) Get(
	ctx context.Context,
	key domain.DateKey,
) (*domain.Override, error) {

	var row models.AvailabilityOverride
	if err := r.db.WithContext(ctx).
		Where("date_key = ?", key.Time()).
		First(&row).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no override for %s", domain.ErrNotFound, key)
		}
		return nil, err
	}

	return toDomain(row), nil
}

func (r *AvailabilityGormRepository) GetByID(
	ctx context.Context,
	id string,
) (*domain.Override, error) {

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: no override with id %q", domain.ErrNotFound, id)
	}

	var row models.AvailabilityOverride
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no override with id %q", domain.ErrNotFound, id)
		}
		return nil, err
	}

	return toDomain(row), nil
}

func (r *AvailabilityGormRepository) List(
	ctx context.Context,
	from *domain.DateKey,
	to *domain.DateKey,
) ([]domain.Override, error) {

	q := r.db.WithContext(ctx).Model(&models.AvailabilityOverride{})

	if from != nil {
		q = q.Where("date_key >= ?", from.Time())
	}
	if to != nil {
		q = q.Where("date_key <= ?", to.Time())
	}

	var rows []models.AvailabilityOverride
	if err := q.Order("date_key ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Override, 0, len(rows))
	for _, row := range rows {
		out = append(out, *toDomain(row))
	}
	return out, nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *AvailabilityGormRepository) Upsert(
	ctx context.Context,
	key domain.DateKey,
	in domain.OverrideInput,
) (*domain.Override, error) {

	existing, err := r.Get(ctx, key)
	switch {
	case err == nil && existing.SameContent(in):
		return existing, nil
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	slots := in.TimeSlots
	if slots == nil {
		slots = []string{}
	}

	row := models.AvailabilityOverride{
		DateKey:   key.Time(),
		TimeSlots: datatypes.JSONSlice[string](slots),
		IsBlocked: in.IsBlocked,
		Notes:     in.Notes,
	}

	// concurrent writers on the same date resolve last-write-wins
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "date_key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"time_slots",
				"is_blocked",
				"notes",
				"updated_at",
			}),
		}).
		Create(&row).Error; err != nil {
		return nil, err
	}

	return r.Get(ctx, key)
}

func (r *AvailabilityGormRepository) Delete(
	ctx context.Context,
	key domain.DateKey,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Where("date_key = ?", key.Time()).
		Delete(&models.AvailabilityOverride{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *AvailabilityGormRepository) DeleteByID(
	ctx context.Context,
	id string,
) (bool, error) {

	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.AvailabilityOverride{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *AvailabilityGormRepository) DeleteBefore(
	ctx context.Context,
	key domain.DateKey,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where("date_key < ?", key.Time()).
		Delete(&models.AvailabilityOverride{})
	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Mapping
// --------------------------------------------------

func toDomain(row models.AvailabilityOverride) *domain.Override {
	slots := []string(row.TimeSlots)
	if slots == nil {
		slots = []string{}
	}

	return &domain.Override{
		ID:        row.ID,
		Date:      domain.DateKeyFromTime(row.DateKey),
		TimeSlots: slots,
		IsBlocked: row.IsBlocked,
		Notes:     row.Notes,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// Compile-time check
var _ domain.Repository = (*AvailabilityGormRepository)(nil)
