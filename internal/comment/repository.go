package comment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/fkhayef/foodmate/pkg/apperr"
)

// Repository handles comment and reply persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new comment repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GroupLive verifies the path's group exists and has not been deleted
func (r *Repository) GroupLive(ctx context.Context, groupID int64) error {
	var status string
	err := r.db.QueryRowContext(ctx,
		`SELECT status FROM groups WHERE id = $1`, groupID,
	).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperr.ErrGroupNotFound
		}
		return fmt.Errorf("failed to get group: %w", err)
	}
	if status == "DELETED" {
		return apperr.ErrGroupDeleted
	}
	return nil
}

// CreateComment inserts a new comment on a group
func (r *Repository) CreateComment(ctx context.Context, groupID, memberID int64, content string) (*Comment, error) {
	query := `
		INSERT INTO comments (group_id, member_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, group_id, member_id, content, created_at, updated_at
	`

	comment := &Comment{}
	err := r.db.QueryRowContext(ctx, query, groupID, memberID, content).Scan(
		&comment.ID,
		&comment.GroupID,
		&comment.MemberID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// GetComment retrieves a comment by its ID
func (r *Repository) GetComment(ctx context.Context, commentID int64) (*Comment, error) {
	query := `
		SELECT id, group_id, member_id, content, created_at, updated_at
		FROM comments
		WHERE id = $1
	`

	comment := &Comment{}
	err := r.db.QueryRowContext(ctx, query, commentID).Scan(
		&comment.ID,
		&comment.GroupID,
		&comment.MemberID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return comment, nil
}

// UpdateComment overwrites a comment's content
func (r *Repository) UpdateComment(ctx context.Context, commentID int64, content string) (*Comment, error) {
	query := `
		UPDATE comments
		SET content = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, group_id, member_id, content, created_at, updated_at
	`

	comment := &Comment{}
	err := r.db.QueryRowContext(ctx, query, commentID, content).Scan(
		&comment.ID,
		&comment.GroupID,
		&comment.MemberID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return comment, nil
}

// DeleteComment removes a comment and all of its replies in one transaction,
// replies first. The comment row lock holds off concurrent reply writes so no
// reply can survive its parent.
func (r *Repository) DeleteComment(ctx context.Context, commentID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM comments WHERE id = $1 FOR UPDATE`, commentID,
	).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperr.ErrCommentNotFound
		}
		return fmt.Errorf("failed to lock comment: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM replies WHERE comment_id = $1`, commentID); err != nil {
		return fmt.Errorf("failed to delete replies: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit comment deletion: %w", err)
	}

	return nil
}

// CreateReply inserts a new reply on a comment
func (r *Repository) CreateReply(ctx context.Context, commentID, memberID int64, content string) (*Reply, error) {
	query := `
		INSERT INTO replies (comment_id, member_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, comment_id, member_id, content, created_at, updated_at
	`

	reply := &Reply{}
	err := r.db.QueryRowContext(ctx, query, commentID, memberID, content).Scan(
		&reply.ID,
		&reply.CommentID,
		&reply.MemberID,
		&reply.Content,
		&reply.CreatedAt,
		&reply.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}

	return reply, nil
}

// GetReply retrieves a reply by its ID
func (r *Repository) GetReply(ctx context.Context, replyID int64) (*Reply, error) {
	query := `
		SELECT id, comment_id, member_id, content, created_at, updated_at
		FROM replies
		WHERE id = $1
	`

	reply := &Reply{}
	err := r.db.QueryRowContext(ctx, query, replyID).Scan(
		&reply.ID,
		&reply.CommentID,
		&reply.MemberID,
		&reply.Content,
		&reply.CreatedAt,
		&reply.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reply: %w", err)
	}

	return reply, nil
}

// UpdateReply overwrites a reply's content
func (r *Repository) UpdateReply(ctx context.Context, replyID int64, content string) (*Reply, error) {
	query := `
		UPDATE replies
		SET content = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, comment_id, member_id, content, created_at, updated_at
	`

	reply := &Reply{}
	err := r.db.QueryRowContext(ctx, query, replyID, content).Scan(
		&reply.ID,
		&reply.CommentID,
		&reply.MemberID,
		&reply.Content,
		&reply.CreatedAt,
		&reply.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.ErrReplyNotFound
		}
		return nil, fmt.Errorf("failed to update reply: %w", err)
	}

	return reply, nil
}

// DeleteReply removes a single reply
func (r *Repository) DeleteReply(ctx context.Context, replyID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM replies WHERE id = $1`, replyID)
	if err != nil {
		return fmt.Errorf("failed to delete reply: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperr.ErrReplyNotFound
	}

	return nil
}

// ListByGroup retrieves a page of comments for a group, each with its replies
func (r *Repository) ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]*Comment, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM comments WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	query := `
		SELECT c.id, c.group_id, c.member_id, c.content, c.created_at, c.updated_at, m.nickname
		FROM comments c
		JOIN members m ON c.member_id = m.id
		WHERE c.group_id = $1
		ORDER BY c.created_at
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*Comment
	var commentIDs []int64
	byID := make(map[int64]*Comment)

	for rows.Next() {
		comment := &Comment{Replies: []*Reply{}}
		if err := rows.Scan(
			&comment.ID,
			&comment.GroupID,
			&comment.MemberID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.UpdatedAt,
			&comment.MemberNickname,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
		commentIDs = append(commentIDs, comment.ID)
		byID[comment.ID] = comment
	}

	if len(commentIDs) == 0 {
		return comments, total, nil
	}

	replyQuery := `
		SELECT r.id, r.comment_id, r.member_id, r.content, r.created_at, r.updated_at, m.nickname
		FROM replies r
		JOIN members m ON r.member_id = m.id
		WHERE r.comment_id = ANY($1)
		ORDER BY r.created_at
	`

	replyRows, err := r.db.QueryContext(ctx, replyQuery, pq.Array(commentIDs))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list replies: %w", err)
	}
	defer replyRows.Close()

	for replyRows.Next() {
		reply := &Reply{}
		if err := replyRows.Scan(
			&reply.ID,
			&reply.CommentID,
			&reply.MemberID,
			&reply.Content,
			&reply.CreatedAt,
			&reply.UpdatedAt,
			&reply.MemberNickname,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan reply: %w", err)
		}
		if parent, ok := byID[reply.CommentID]; ok {
			parent.Replies = append(parent.Replies, reply)
		}
	}

	return comments, total, nil
}
