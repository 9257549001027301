package items

import (
	"context"
	"errors"

	"github.com/easemart/easemart-backend/pkg/db/models"
	pkgerrors "github.com/easemart/easemart-backend/pkg/errors"
	"github.com/easemart/easemart-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes the catalog operations. Update and Delete surface the raw
// row counts because the API returns them to clients as-is.
type Service interface {
	List(ctx context.Context, limit int) ([]ItemDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ItemDTO, error)
	Create(ctx context.Context, input CreateItemInput) (*ItemDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateItemInput) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// Repo is the persistence surface the service depends on.
type Repo interface {
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	List(ctx context.Context, limit int) ([]models.Item, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type service struct {
	repo Repo
	logg *logger.Logger
}

// NewService wires the items service.
func NewService(repo Repo, logg *logger.Logger) Service {
	return &service{repo: repo, logg: logg}
}

func (s *service) List(ctx context.Context, limit int) ([]ItemDTO, error) {
	rows, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}
	out := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	return FromModel(item), nil
}

func (s *service) Create(ctx context.Context, input CreateItemInput) (*ItemDTO, error) {
	created, err := s.repo.Create(ctx, input.ToModel())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create item")
	}
	s.logg.Info(s.logg.WithField(ctx, "item_id", created.ID.String()), "item.created")
	return FromModel(created), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateItemInput) (int64, error) {
	fields := input.Fields()
	if len(fields) == 0 {
		return 0, nil
	}
	count, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update item")
	}
	if count == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	return count, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	count, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete item")
	}
	if count == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	return count, nil
}
