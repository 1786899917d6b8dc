package mapper

import (
	"civic-bridge-be/internal/entity"
	"civic-bridge-be/internal/model"
)

type RepresentativeContactMapper struct{}

func NewRepresentativeContactMapper() *RepresentativeContactMapper {
	return &RepresentativeContactMapper{}
}

func (m *RepresentativeContactMapper) ToEntity(c *model.RepresentativeContact) *entity.RepresentativeContact {
	if c == nil {
		return nil
	}
	return &entity.RepresentativeContact{
		Id:               c.Id,
		UserId:           c.UserId,
		RepresentativeId: c.RepresentativeId,
		LastContactedAt:  c.LastContactedAt,
		LifetimeCount:    c.LifetimeCount,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func (m *RepresentativeContactMapper) ToModel(c *entity.RepresentativeContact) *model.RepresentativeContact {
	if c == nil {
		return nil
	}
	return &model.RepresentativeContact{
		Id:               c.Id,
		UserId:           c.UserId,
		RepresentativeId: c.RepresentativeId,
		LastContactedAt:  c.LastContactedAt,
		LifetimeCount:    c.LifetimeCount,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func (m *RepresentativeContactMapper) ToEntities(contacts []*model.RepresentativeContact) []*entity.RepresentativeContact {
	entities := make([]*entity.RepresentativeContact, len(contacts))
	for i, c := range contacts {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
