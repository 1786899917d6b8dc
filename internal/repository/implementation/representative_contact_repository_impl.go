package implementation

import (
	"context"
	"errors"
	"time"

	"civic-bridge-be/internal/entity"
	"civic-bridge-be/internal/mapper"
	"civic-bridge-be/internal/model"
	"civic-bridge-be/internal/repository/contract"
	"civic-bridge-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RepresentativeContactRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RepresentativeContactMapper
}

func NewRepresentativeContactRepository(db *gorm.DB) contract.RepresentativeContactRepository {
	return &RepresentativeContactRepositoryImpl{
		db:     db,
		mapper: mapper.NewRepresentativeContactMapper(),
	}
}

func (r *RepresentativeContactRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RepresentativeContact, error) {
	var m model.RepresentativeContact
	query := specification.ApplyAll(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RepresentativeContactRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RepresentativeContact, error) {
	var models []*model.RepresentativeContact
	query := specification.ApplyAll(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RepresentativeContactRepositoryImpl) RecordContact(ctx context.Context, userId uuid.UUID, representativeId string, at time.Time) (*entity.RepresentativeContact, error) {
	var m model.RepresentativeContact
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND representative_id = ?", userId, representativeId).
		First(&m).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		m = model.RepresentativeContact{
			UserId:           userId,
			RepresentativeId: representativeId,
			LastContactedAt:  &at,
			LifetimeCount:    1,
		}
		if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		err = r.db.WithContext(ctx).Model(&m).Updates(map[string]interface{}{
			"last_contacted_at": at,
			"lifetime_count":    gorm.Expr("lifetime_count + ?", 1),
		}).Error
		if err != nil {
			return nil, err
		}
		if err := r.db.WithContext(ctx).First(&m, "id = ?", m.Id).Error; err != nil {
			return nil, err
		}
	}

	return r.mapper.ToEntity(&m), nil
}
