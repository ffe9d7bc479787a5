package comment

// Request carries the text content for comment and reply writes
type Request struct {
	Content string `json:"content" validate:"required,max=500"`
}

// ReplyResponse represents a reply in API responses
type ReplyResponse struct {
	ID             int64  `json:"id"`
	CommentID      int64  `json:"comment_id"`
	MemberID       int64  `json:"member_id"`
	MemberNickname string `json:"member_nickname,omitempty"`
	Content        string `json:"content"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// Response represents a comment with its replies in API responses
type Response struct {
	ID             int64            `json:"id"`
	GroupID        int64            `json:"group_id"`
	MemberID       int64            `json:"member_id"`
	MemberNickname string           `json:"member_nickname,omitempty"`
	Content        string           `json:"content"`
	CreatedAt      string           `json:"created_at"`
	UpdatedAt      string           `json:"updated_at"`
	Replies        []*ReplyResponse `json:"replies"`
}

// ToResponse converts a Comment model to a Response DTO
func (c *Comment) ToResponse() *Response {
	replies := make([]*ReplyResponse, len(c.Replies))
	for i, r := range c.Replies {
		replies[i] = r.ToResponse()
	}

	return &Response{
		ID:             c.ID,
		GroupID:        c.GroupID,
		MemberID:       c.MemberID,
		MemberNickname: c.MemberNickname,
		Content:        c.Content,
		CreatedAt:      c.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:      c.UpdatedAt.Format("2006-01-02T15:04:05Z"),
		Replies:        replies,
	}
}

// ToResponse converts a Reply model to a ReplyResponse DTO
func (r *Reply) ToResponse() *ReplyResponse {
	return &ReplyResponse{
		ID:             r.ID,
		CommentID:      r.CommentID,
		MemberID:       r.MemberID,
		MemberNickname: r.MemberNickname,
		Content:        r.Content,
		CreatedAt:      r.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:      r.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
