package contract

import (
	"context"

	"civic-bridge-be/internal/entity"
	"civic-bridge-be/internal/repository/specification"
)

type ActivityLogRepository interface {
	Create(ctx context.Context, log *entity.ActivityLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ActivityLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type ArchivedDocumentRepository interface {
	Create(ctx context.Context, doc *entity.ArchivedDocument) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ArchivedDocument, error)
}
