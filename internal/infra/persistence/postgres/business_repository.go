package postgres

import (
	"context"

	domainerrors "joylist/internal/domain/errors"
	"joylist/internal/domain/repository"
	"joylist/internal/infra/persistence/model"

	"joylist/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// businessRepository implements the domain.BusinessRepository interface using GORM.
type businessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository is the constructor for businessRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewBusinessRepository(db *gorm.DB) repository.BusinessRepository {
	return &businessRepository{db: db}
}

// FindAll retrieves every business. No ordering is applied.
func (repo *businessRepository) FindAll(ctx context.Context) ([]*entity.Business, error) {
	var rows []*model.BusinessModel
	if err := repo.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list businesses")
	}

	return toDomainSlice(rows), nil
}

// FindByUser retrieves the businesses owned by userID, ordered by name ascending.
func (repo *businessRepository) FindByUser(ctx context.Context, userID string) ([]*entity.Business, error) {
	var rows []*model.BusinessModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name asc").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list businesses by user")
	}

	return toDomainSlice(rows), nil
}

// FindByID retrieves a single business by its unique ID.
func (repo *businessRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	var row model.BusinessModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBusinessNotFound
		}

		return nil, errors.Wrap(err, "failed to find business by id")
	}

	return row.ToDomain(), nil
}

// Create persists a new business and backfills the generated ID and timestamps.
func (repo *businessRepository) Create(ctx context.Context, business *entity.Business) error {
	row := model.FromDomain(business)

	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create business")
	}

	business.ID = row.ID
	business.CreatedAt = row.CreatedAt
	business.UpdatedAt = row.UpdatedAt

	return nil
}

// Update overwrites the content fields of an existing row. The owner column
// is deliberately not part of the update set.
func (repo *businessRepository) Update(ctx context.Context, business *entity.Business) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BusinessModel{}).
		Where("id = ?", business.ID).
		Updates(map[string]any{
			"name":  business.Name,
			"type":  business.Type,
			"url":   business.URL,
			"phone": business.Phone,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update business")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBusinessNotFound
	}

	return nil
}

// Delete removes the row matching id and returns the removed record.
func (repo *businessRepository) Delete(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	var row model.BusinessModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBusinessNotFound
		}

		return nil, errors.Wrap(err, "failed to find business for delete")
	}

	if err := repo.db.WithContext(ctx).Delete(&row).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to delete business")
	}

	return row.ToDomain(), nil
}

func toDomainSlice(rows []*model.BusinessModel) []*entity.Business {
	businesses := make([]*entity.Business, 0, len(rows))
	for _, row := range rows {
		businesses = append(businesses, row.ToDomain())
	}

	return businesses
}
