package enrollment

// Response represents an enrollment in API responses
type Response struct {
	ID             int64  `json:"id"`
	MemberID       int64  `json:"member_id"`
	GroupID        int64  `json:"group_id"`
	Status         Status `json:"status"`
	EnrollDate     string `json:"enroll_date"`
	DecisionDate   string `json:"decision_date,omitempty"`
	MemberNickname string `json:"member_nickname,omitempty"`
	GroupTitle     string `json:"group_title,omitempty"`
	GroupDateTime  string `json:"group_date_time,omitempty"`
}

// ToResponse converts an Enrollment model to a Response DTO
func (e *Enrollment) ToResponse() *Response {
	resp := &Response{
		ID:             e.ID,
		MemberID:       e.MemberID,
		GroupID:        e.GroupID,
		Status:         e.Status,
		EnrollDate:     e.EnrollDate.Format("2006-01-02T15:04:05Z"),
		MemberNickname: e.MemberNickname,
		GroupTitle:     e.GroupTitle,
	}
	if e.DecisionDate != nil {
		resp.DecisionDate = e.DecisionDate.Format("2006-01-02T15:04:05Z")
	}
	if !e.GroupDateTime.IsZero() {
		resp.GroupDateTime = e.GroupDateTime.Format("2006-01-02T15:04:05Z")
	}
	return resp
}
