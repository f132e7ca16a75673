package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/restledger/internal/domain"
	"github.com/iho/restledger/internal/infrastructure/postgres/generated"
)

// GroupRepository implements usecase.GroupRepository.
type GroupRepository struct {
	queries *generated.Queries
}

// NewGroupRepository creates a new GroupRepository.
func NewGroupRepository(pool *pgxpool.Pool) *GroupRepository {
	return newGroupRepositoryWithDB(pool)
}

func newGroupRepositoryWithDB(db generated.DBTX) *GroupRepository {
	return &GroupRepository{queries: generated.New(db)}
}

// Create creates a new main group.
func (r *GroupRepository) Create(ctx context.Context, group *domain.MainGroup) error {
	err := r.queries.CreateGroup(ctx, generated.CreateGroupParams{
		ID:        group.ID,
		Name:      group.Name,
		Nature:    string(group.Nature),
		CreatedAt: timeToPgTimestamptz(group.CreatedAt),
	})

	return translate(err)
}

// GetByID retrieves a main group by ID.
func (r *GroupRepository) GetByID(ctx context.Context, id string) (*domain.MainGroup, error) {
	row, err := r.queries.GetGroupByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrGroupNotFound)
	}

	return rowToGroup(row), nil
}

// List lists main groups after a cursor, ordered by id.
func (r *GroupRepository) List(ctx context.Context, after string, limit int) ([]*domain.MainGroup, error) {
	rows, err := r.queries.ListGroups(ctx, generated.ListGroupsParams{
		After: after,
		Limit: int32(limit),
	})
	if err != nil {
		return nil, err
	}

	groups := make([]*domain.MainGroup, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, rowToGroup(row))
	}

	return groups, nil
}

func rowToGroup(row generated.MainGroup) *domain.MainGroup {
	return &domain.MainGroup{
		ID:        row.ID,
		Name:      row.Name,
		Nature:    domain.Nature(row.Nature),
		CreatedAt: row.CreatedAt.Time,
	}
}
