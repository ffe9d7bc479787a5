package enrollment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/fkhayef/foodmate/pkg/apperr"
)

// pqUniqueViolation is the Postgres error code for unique constraint breaks
const pqUniqueViolation = "23505"

// Repository is the enrollment ledger. The capacity and uniqueness invariants
// live here: every mutating method runs in one transaction holding the group
// row lock, so enroll/accept/cancel for the same group serialize against each
// other while different groups never contend.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new enrollment repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Enroll atomically checks liveness, prior history and capacity, then inserts
// a SUBMITTED enrollment. The partial unique index on live (member, group)
// pairs backstops the history check against races; a violation surfaces as
// the same conflict error.
func (r *Repository) Enroll(ctx context.Context, groupID, memberID int64) (*Enrollment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	maximum, err := lockLiveGroup(ctx, tx, groupID, nil)
	if err != nil {
		return nil, err
	}

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM enrollments
			WHERE member_id = $1 AND group_id = $2 AND status <> 'GROUP_CANCELLED'
		)`, memberID, groupID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment history: %w", err)
	}
	if exists {
		return nil, apperr.ErrEnrollmentHistoryExists
	}

	// Submitted enrollments reserve a seat until decided, so two racing
	// enrolls on the last seat cannot both get in.
	var live int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM enrollments
		WHERE group_id = $1 AND status IN ('SUBMITTED', 'ACCEPTED')`, groupID,
	).Scan(&live)
	if err != nil {
		return nil, fmt.Errorf("failed to count live enrollments: %w", err)
	}
	if live+1 >= maximum { // the owner holds a seat
		return nil, apperr.ErrGroupFull
	}

	enrollment := &Enrollment{MemberID: memberID, GroupID: groupID, Status: StatusSubmitted}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO enrollments (member_id, group_id, status)
		VALUES ($1, $2, 'SUBMITTED')
		RETURNING id, enroll_date`, memberID, groupID,
	).Scan(&enrollment.ID, &enrollment.EnrollDate)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, apperr.ErrEnrollmentHistoryExists
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit enrollment: %w", err)
	}

	return enrollment, nil
}

// Decide moves a SUBMITTED enrollment to ACCEPTED or REJECTED on behalf of
// the group owner. Accepting re-checks capacity under the group lock so the
// standing invariant (accepted + owner never exceed maximum) holds even when
// decisions race with enrolls. The group lock is taken before the enrollment
// lock, matching the order the delete cascade uses.
func (r *Repository) Decide(ctx context.Context, enrollmentID, ownerID int64, to Status) (*Enrollment, error) {
	if to != StatusAccepted && to != StatusRejected {
		return nil, fmt.Errorf("invalid decision status %q", to)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var groupID int64
	err = tx.QueryRowContext(ctx,
		`SELECT group_id FROM enrollments WHERE id = $1`, enrollmentID,
	).Scan(&groupID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}

	var groupOwnerID int64
	maximum, err := lockLiveGroup(ctx, tx, groupID, &groupOwnerID)
	if err != nil {
		return nil, err
	}
	if groupOwnerID != ownerID {
		return nil, apperr.ErrNoDecisionPermission
	}

	// Re-read under the group lock; the cascade may have cancelled it.
	var status Status
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM enrollments WHERE id = $1 FOR UPDATE`, enrollmentID,
	).Scan(&status)
	if err != nil {
		return nil, fmt.Errorf("failed to lock enrollment: %w", err)
	}
	if status.Decided() {
		return nil, apperr.ErrAlreadyDecided
	}

	if to == StatusAccepted {
		accepted, err := countAccepted(ctx, tx, groupID)
		if err != nil {
			return nil, err
		}
		if accepted+1 >= maximum {
			return nil, apperr.ErrGroupFull
		}
	}

	enrollment := &Enrollment{ID: enrollmentID, GroupID: groupID}
	err = tx.QueryRowContext(ctx, `
		UPDATE enrollments
		SET status = $2, decision_date = now()
		WHERE id = $1
		RETURNING member_id, status, enroll_date, decision_date`, enrollmentID, to,
	).Scan(&enrollment.MemberID, &enrollment.Status, &enrollment.EnrollDate, &enrollment.DecisionDate)
	if err != nil {
		return nil, fmt.Errorf("failed to decide enrollment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit decision: %w", err)
	}

	return enrollment, nil
}

// CountAccepted counts accepted enrollments for a group
func (r *Repository) CountAccepted(ctx context.Context, groupID int64) (int, error) {
	return countAccepted(ctx, r.db, groupID)
}

// ListByMember retrieves a member's enrollments, optionally filtered by status
func (r *Repository) ListByMember(ctx context.Context, memberID int64, status string, limit, offset int) ([]*Enrollment, int, error) {
	where := `WHERE e.member_id = $1`
	args := []interface{}{memberID}
	if status != "" {
		where += ` AND e.status = $2`
		args = append(args, status)
	}
	return r.list(ctx, where, args, limit, offset)
}

// ListReceived retrieves enrollments submitted to groups the caller owns
func (r *Repository) ListReceived(ctx context.Context, ownerID int64, status string, limit, offset int) ([]*Enrollment, int, error) {
	where := `WHERE g.member_id = $1`
	args := []interface{}{ownerID}
	if status != "" {
		where += ` AND e.status = $2`
		args = append(args, status)
	}
	return r.list(ctx, where, args, limit, offset)
}

func (r *Repository) list(ctx context.Context, where string, args []interface{}, limit, offset int) ([]*Enrollment, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM enrollments e
		JOIN groups g ON e.group_id = g.id ` + where

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count enrollments: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf(`
		SELECT e.id, e.member_id, e.group_id, e.status, e.enroll_date, e.decision_date,
		       m.nickname, g.title, g.group_date_time
		FROM enrollments e
		JOIN groups g ON e.group_id = g.id
		JOIN members m ON e.member_id = m.id
		%s
		ORDER BY e.enroll_date
		LIMIT $%d OFFSET $%d
	`, where, n+1, n+2)

	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*Enrollment
	for rows.Next() {
		e := &Enrollment{}
		if err := rows.Scan(
			&e.ID,
			&e.MemberID,
			&e.GroupID,
			&e.Status,
			&e.EnrollDate,
			&e.DecisionDate,
			&e.MemberNickname,
			&e.GroupTitle,
			&e.GroupDateTime,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		enrollments = append(enrollments, e)
	}

	return enrollments, total, nil
}

// lockLiveGroup locks a group row for the transaction and rejects missing or
// deleted groups. ownerID, when non-nil, receives the group owner.
func lockLiveGroup(ctx context.Context, tx *sql.Tx, groupID int64, ownerID *int64) (maximum int, err error) {
	var owner int64
	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT member_id, maximum, status FROM groups WHERE id = $1 FOR UPDATE`, groupID,
	).Scan(&owner, &maximum, &status)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, apperr.ErrGroupNotFound
		}
		return 0, fmt.Errorf("failed to lock group: %w", err)
	}
	if status == "DELETED" {
		return 0, apperr.ErrGroupDeleted
	}
	if ownerID != nil {
		*ownerID = owner
	}
	return maximum, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func countAccepted(ctx context.Context, q queryRower, groupID int64) (int, error) {
	var count int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE group_id = $1 AND status = 'ACCEPTED'`, groupID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count accepted enrollments: %w", err)
	}
	return count, nil
}
