package sqlite

import (
	"context"
	"database/sql"

	"github.com/iho/restledger/internal/domain"
)

const groupColumns = `id, name, nature, created_at`

// GroupRepository implements usecase.GroupRepository.
type GroupRepository struct {
	db querier
}

// NewGroupRepository creates a new GroupRepository.
func NewGroupRepository(db *sql.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// Create creates a new main group.
func (r *GroupRepository) Create(ctx context.Context, group *domain.MainGroup) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO main_groups (`+groupColumns+`) VALUES (?, ?, ?, ?)`,
		group.ID, group.Name, string(group.Nature), formatTime(group.CreatedAt),
	)
	return translate(err, nil)
}

// GetByID retrieves a main group by ID.
func (r *GroupRepository) GetByID(ctx context.Context, id string) (*domain.MainGroup, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+groupColumns+` FROM main_groups WHERE id = ?`, id)

	group, err := scanGroup(row)
	if err != nil {
		return nil, notFound(err, domain.ErrGroupNotFound)
	}
	return group, nil
}

// List lists main groups after a cursor, ordered by id.
func (r *GroupRepository) List(ctx context.Context, after string, limit int) ([]*domain.MainGroup, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+groupColumns+` FROM main_groups WHERE id > ? ORDER BY id LIMIT ?`,
		after, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*domain.MainGroup
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGroup(s scanner) (*domain.MainGroup, error) {
	var (
		group     domain.MainGroup
		nature    string
		createdAt string
	)
	if err := s.Scan(&group.ID, &group.Name, &nature, &createdAt); err != nil {
		return nil, err
	}
	group.Nature = domain.Nature(nature)
	group.CreatedAt = parseTime(createdAt)
	return &group, nil
}
