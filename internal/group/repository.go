package group

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fkhayef/foodmate/pkg/apperr"
	"github.com/fkhayef/foodmate/pkg/geo"
)

// Repository handles group data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const groupColumns = `
	g.id, g.member_id, g.title, g.name, g.content, g.food_id,
	g.group_date_time, g.maximum, g.store_name, g.store_address,
	g.latitude, g.longitude, g.status, g.created_at, g.deleted_at,
	f.type`

// currentExpr is the authoritative headcount: accepted enrollments plus the owner.
const currentExpr = `
	(SELECT COUNT(*) FROM enrollments e
	 WHERE e.group_id = g.id AND e.status = 'ACCEPTED') + 1`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGroup(row rowScanner) (*Group, error) {
	group := &Group{}
	err := row.Scan(
		&group.ID,
		&group.MemberID,
		&group.Title,
		&group.Name,
		&group.Content,
		&group.FoodID,
		&group.GroupDateTime,
		&group.Maximum,
		&group.StoreName,
		&group.StoreAddress,
		&group.Location.Latitude,
		&group.Location.Longitude,
		&group.Status,
		&group.CreatedAt,
		&group.DeletedAt,
		&group.FoodType,
	)
	if err != nil {
		return nil, err
	}
	return group, nil
}

// Create inserts a new group and its companion chat room in one transaction,
// so a group is never observable without its room.
func (r *Repository) Create(ctx context.Context, g *Group) (*Group, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO groups (member_id, title, name, content, food_id, group_date_time,
		                    maximum, store_name, store_address, latitude, longitude, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, query,
		g.MemberID, g.Title, g.Name, g.Content, g.FoodID, g.GroupDateTime,
		g.Maximum, g.StoreName, g.StoreAddress,
		g.Location.Latitude, g.Location.Longitude, StatusActive,
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO chat_rooms (group_id) VALUES ($1)`, g.ID); err != nil {
		return nil, fmt.Errorf("failed to create chat room: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit group creation: %w", err)
	}

	g.Status = StatusActive
	return g, nil
}

// GetByID retrieves a group by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Group, error) {
	query := `
		SELECT ` + groupColumns + `
		FROM groups g
		JOIN foods f ON g.food_id = f.id
		WHERE g.id = $1
	`

	group, err := scanGroup(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

// Update overwrites the mutable fields of an existing group
func (r *Repository) Update(ctx context.Context, g *Group) (*Group, error) {
	query := `
		UPDATE groups
		SET title = $2, name = $3, content = $4, food_id = $5, group_date_time = $6,
		    maximum = $7, store_name = $8, store_address = $9, latitude = $10, longitude = $11
		WHERE id = $1 AND status = 'ACTIVE'
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		g.ID, g.Title, g.Name, g.Content, g.FoodID, g.GroupDateTime,
		g.Maximum, g.StoreName, g.StoreAddress,
		g.Location.Latitude, g.Location.Longitude,
	).Scan(&g.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			// The row exists but is no longer ACTIVE when a delete landed
			// between the caller's liveness check and this statement.
			var status Status
			serr := r.db.QueryRowContext(ctx,
				`SELECT status FROM groups WHERE id = $1`, g.ID,
			).Scan(&status)
			if serr == nil && status == StatusDeleted {
				return nil, apperr.ErrGroupDeleted
			}
			return nil, apperr.ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	return g, nil
}

// SoftDelete marks a group DELETED and cascades in one transaction: pending
// and accepted enrollments become GROUP_CANCELLED and the chat room goes
// away. The group row lock keeps concurrent enrolls from seeing a half-done
// cascade. REJECTED enrollments are terminal already and are left alone.
func (r *Repository) SoftDelete(ctx context.Context, groupID, memberID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var ownerID int64
	var status Status
	err = tx.QueryRowContext(ctx,
		`SELECT member_id, status FROM groups WHERE id = $1 FOR UPDATE`, groupID,
	).Scan(&ownerID, &status)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperr.ErrGroupNotFound
		}
		return fmt.Errorf("failed to lock group: %w", err)
	}

	if status == StatusDeleted {
		return apperr.ErrGroupDeleted
	}
	if ownerID != memberID {
		return apperr.ErrNoDeletePermissionGroup
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE groups SET status = 'DELETED', deleted_at = now() WHERE id = $1`, groupID,
	); err != nil {
		return fmt.Errorf("failed to soft delete group: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE enrollments
		SET status = 'GROUP_CANCELLED', decision_date = now()
		WHERE group_id = $1 AND status IN ('SUBMITTED', 'ACCEPTED')`, groupID,
	); err != nil {
		return fmt.Errorf("failed to cancel enrollments: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM chat_rooms WHERE group_id = $1`, groupID,
	); err != nil {
		return fmt.Errorf("failed to delete chat room: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit group deletion: %w", err)
	}

	return nil
}

// Search retrieves live groups whose title or name matches the keyword
func (r *Repository) Search(ctx context.Context, keyword string, limit, offset int) ([]*Group, int, error) {
	pattern := "%" + keyword + "%"

	where := `WHERE g.status = 'ACTIVE' AND (g.title ILIKE $1 OR g.name ILIKE $1)`
	return r.list(ctx, where, []interface{}{pattern}, limit, offset)
}

// ListToday retrieves live groups scheduled for the current day
func (r *Repository) ListToday(ctx context.Context, limit, offset int) ([]*Group, int, error) {
	where := `WHERE g.status = 'ACTIVE' AND g.group_date_time::date = now()::date`
	return r.list(ctx, where, nil, limit, offset)
}

// ListAll retrieves all live upcoming groups
func (r *Repository) ListAll(ctx context.Context, limit, offset int) ([]*Group, int, error) {
	where := `WHERE g.status = 'ACTIVE' AND g.group_date_time > now()`
	return r.list(ctx, where, nil, limit, offset)
}

// withinRadiusExpr keeps groups whose store lies within 3 km of the request
// point ($1 latitude, $2 longitude), by great-circle distance. least() guards
// the acos domain against rounding on near-identical points.
const withinRadiusExpr = `
	6371000 * acos(least(1.0,
		cos(radians($1)) * cos(radians(g.latitude)) * cos(radians(g.longitude) - radians($2))
		+ sin(radians($1)) * sin(radians(g.latitude))
	)) <= 3000`

// ListNearby retrieves live groups whose store is within 3 km of a point
func (r *Repository) ListNearby(ctx context.Context, point geo.Point, limit, offset int) ([]*Group, int, error) {
	where := `WHERE g.status = 'ACTIVE' AND` + withinRadiusExpr
	return r.list(ctx, where, []interface{}{point.Latitude, point.Longitude}, limit, offset)
}

func (r *Repository) list(ctx context.Context, where string, args []interface{}, limit, offset int) ([]*Group, int, error) {
	countQuery := `SELECT COUNT(*) FROM groups g ` + where

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count groups: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf(`
		SELECT `+groupColumns+`, `+currentExpr+` AS current
		FROM groups g
		JOIN foods f ON g.food_id = f.id
		%s
		ORDER BY g.group_date_time
		LIMIT $%d OFFSET $%d
	`, where, n+1, n+2)

	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		group := &Group{}
		if err := rows.Scan(
			&group.ID,
			&group.MemberID,
			&group.Title,
			&group.Name,
			&group.Content,
			&group.FoodID,
			&group.GroupDateTime,
			&group.Maximum,
			&group.StoreName,
			&group.StoreAddress,
			&group.Location.Latitude,
			&group.Location.Longitude,
			&group.Status,
			&group.CreatedAt,
			&group.DeletedAt,
			&group.FoodType,
			&group.Current,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}

	return groups, total, nil
}
