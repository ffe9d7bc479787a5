package chat

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository reads chat-room companion records. Rooms are created and removed
// inside the group repository's transactions so they always share the group's
// fate; this repository only ever looks them up.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new chat room repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetByGroupID retrieves the companion room for a group
func (r *Repository) GetByGroupID(ctx context.Context, groupID int64) (*Room, error) {
	query := `
		SELECT id, group_id, attendance, created_at
		FROM chat_rooms
		WHERE group_id = $1
	`

	room := &Room{}
	err := r.db.QueryRowContext(ctx, query, groupID).Scan(
		&room.ID,
		&room.GroupID,
		&room.Attendance,
		&room.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get chat room: %w", err)
	}

	return room, nil
}
