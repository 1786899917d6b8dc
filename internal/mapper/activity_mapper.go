package mapper

import (
	"civic-bridge-be/internal/entity"
	"civic-bridge-be/internal/model"

	"gorm.io/datatypes"
)

type ActivityMapper struct{}

func NewActivityMapper() *ActivityMapper {
	return &ActivityMapper{}
}

func (m *ActivityMapper) LogToEntity(a *model.ActivityLog) *entity.ActivityLog {
	if a == nil {
		return nil
	}
	return &entity.ActivityLog{
		Id:        a.Id,
		UserId:    a.UserId,
		RepName:   a.RepName,
		RepRole:   a.RepRole,
		RepAvatar: a.RepAvatar,
		Topic:     a.Topic,
		Excerpt:   a.Excerpt,
		Method:    entity.ContactMethod(a.Method),
		CreatedAt: a.CreatedAt,
	}
}

func (m *ActivityMapper) LogToModel(a *entity.ActivityLog) *model.ActivityLog {
	if a == nil {
		return nil
	}
	return &model.ActivityLog{
		Id:        a.Id,
		UserId:    a.UserId,
		RepName:   a.RepName,
		RepRole:   a.RepRole,
		RepAvatar: a.RepAvatar,
		Topic:     a.Topic,
		Excerpt:   a.Excerpt,
		Method:    string(a.Method),
		CreatedAt: a.CreatedAt,
	}
}

func (m *ActivityMapper) LogsToEntities(logs []*model.ActivityLog) []*entity.ActivityLog {
	entities := make([]*entity.ActivityLog, len(logs))
	for i, l := range logs {
		entities[i] = m.LogToEntity(l)
	}
	return entities
}

func (m *ActivityMapper) DocumentToEntity(d *model.ArchivedDocument) *entity.ArchivedDocument {
	if d == nil {
		return nil
	}
	return &entity.ArchivedDocument{
		Id:        d.Id,
		UserId:    d.UserId,
		Title:     d.Title,
		SizeBytes: d.SizeBytes,
		Type:      entity.DocumentType(d.Type),
		Metadata:  map[string]interface{}(d.Metadata),
		CreatedAt: d.CreatedAt,
	}
}

func (m *ActivityMapper) DocumentToModel(d *entity.ArchivedDocument) *model.ArchivedDocument {
	if d == nil {
		return nil
	}
	return &model.ArchivedDocument{
		Id:        d.Id,
		UserId:    d.UserId,
		Title:     d.Title,
		SizeBytes: d.SizeBytes,
		Type:      string(d.Type),
		Metadata:  datatypes.JSONMap(d.Metadata),
		CreatedAt: d.CreatedAt,
	}
}

func (m *ActivityMapper) DocumentsToEntities(docs []*model.ArchivedDocument) []*entity.ArchivedDocument {
	entities := make([]*entity.ArchivedDocument, len(docs))
	for i, d := range docs {
		entities[i] = m.DocumentToEntity(d)
	}
	return entities
}
