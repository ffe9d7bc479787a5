package comment

import "time"

// Comment is a discussion entry attached to a group
type Comment struct {
	ID        int64     `json:"id"`
	GroupID   int64     `json:"group_id"`
	MemberID  int64     `json:"member_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Populated from JOIN
	MemberNickname string   `json:"member_nickname,omitempty"`
	Replies        []*Reply `json:"replies,omitempty"`
}

// Reply is a nested response attached to a comment
type Reply struct {
	ID        int64     `json:"id"`
	CommentID int64     `json:"comment_id"`
	MemberID  int64     `json:"member_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Populated from JOIN
	MemberNickname string `json:"member_nickname,omitempty"`
}
