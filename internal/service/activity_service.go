package service

import (
	"context"
	"fmt"

	"civic-bridge-be/internal/dto"
	"civic-bridge-be/internal/entity"
	"civic-bridge-be/internal/repository/specification"
	"civic-bridge-be/internal/repository/unitofwork"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	documentDate    = "Jan 2, 2006"
)

type IActivityService interface {
	// ListLogs returns the caller's activity newest first.
	ListLogs(ctx context.Context, caller Caller, page, pageSize int) (*dto.ActivityPageResponse, error)
	ListDocuments(ctx context.Context, caller Caller) ([]dto.ArchivedDocumentResponse, error)
	// Record appends one entry to a user's activity history.
	Record(ctx context.Context, log *entity.ActivityLog) (*dto.ActivityLogResponse, error)
}

type activityService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewActivityService(uowFactory unitofwork.RepositoryFactory) IActivityService {
	return &activityService{
		uowFactory: uowFactory,
	}
}

func (s *activityService) ListLogs(ctx context.Context, caller Caller, page, pageSize int) (*dto.ActivityPageResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	repo := s.uowFactory.NewUnitOfWork(ctx).ActivityLogRepository()
	owned := specification.UserOwnedBy{UserID: caller.UserID}

	total, err := repo.Count(ctx, owned)
	if err != nil {
		return nil, fmt.Errorf("count activity: %w", err)
	}

	logs, err := repo.FindAll(ctx,
		owned,
		specification.NewestFirst,
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}

	out := make([]dto.ActivityLogResponse, len(logs))
	for i, l := range logs {
		out[i] = toActivityLogResponse(l)
	}
	return &dto.ActivityPageResponse{Logs: out, Total: total}, nil
}

func (s *activityService) ListDocuments(ctx context.Context, caller Caller) ([]dto.ArchivedDocumentResponse, error) {
	docs, err := s.uowFactory.NewUnitOfWork(ctx).ArchivedDocumentRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: caller.UserID},
		specification.NewestFirst,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	out := make([]dto.ArchivedDocumentResponse, len(docs))
	for i, d := range docs {
		out[i] = dto.ArchivedDocumentResponse{
			Id:    d.Id.String(),
			Title: d.Title,
			Size:  formatSize(d.SizeBytes),
			Date:  d.CreatedAt.Format(documentDate),
			Type:  string(d.Type),
		}
	}
	return out, nil
}

func (s *activityService) Record(ctx context.Context, log *entity.ActivityLog) (*dto.ActivityLogResponse, error) {
	if err := s.uowFactory.NewUnitOfWork(ctx).ActivityLogRepository().Create(ctx, log); err != nil {
		return nil, fmt.Errorf("create activity log: %w", err)
	}
	res := toActivityLogResponse(log)
	return &res, nil
}

func toActivityLogResponse(l *entity.ActivityLog) dto.ActivityLogResponse {
	return dto.ActivityLogResponse{
		Id:        l.Id.String(),
		RepName:   l.RepName,
		RepRole:   l.RepRole,
		RepAvatar: l.RepAvatar,
		Topic:     l.Topic,
		Date:      l.CreatedAt,
		Excerpt:   l.Excerpt,
		Method:    string(l.Method),
	}
}

// formatSize renders a byte count the way the archive lists it ("1.2 MB").
func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}
