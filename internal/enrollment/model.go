package enrollment

import "time"

// Status is the enrollment lifecycle state. SUBMITTED is the only state with
// outgoing transitions: the owner accepts or rejects, or the group's deletion
// cancels it. ACCEPTED additionally transitions to GROUP_CANCELLED on group
// deletion. REJECTED and GROUP_CANCELLED are terminal; a member who wants
// back in after a cancellation gets a brand new record.
type Status string

const (
	StatusSubmitted      Status = "SUBMITTED"
	StatusAccepted       Status = "ACCEPTED"
	StatusRejected       Status = "REJECTED"
	StatusGroupCancelled Status = "GROUP_CANCELLED"
)

// Decided reports whether the status is past the owner's decision point
func (s Status) Decided() bool {
	return s != StatusSubmitted
}

// Enrollment represents a member's request to join a group
type Enrollment struct {
	ID           int64      `json:"id"`
	MemberID     int64      `json:"member_id"`
	GroupID      int64      `json:"group_id"`
	Status       Status     `json:"status"`
	EnrollDate   time.Time  `json:"enroll_date"`
	DecisionDate *time.Time `json:"decision_date,omitempty"`

	// Populated from JOIN
	MemberNickname string    `json:"member_nickname,omitempty"`
	GroupTitle     string    `json:"group_title,omitempty"`
	GroupDateTime  time.Time `json:"group_date_time,omitempty"`
}
