package member

// SignupRequest represents the request body for registering a member
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Nickname string `json:"nickname" validate:"required,min=2,max=30"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries the issued access token
type TokenResponse struct {
	Token string `json:"token"`
}

// MemberResponse represents the response for a single member
type MemberResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Nickname  string `json:"nickname"`
	CreatedAt string `json:"created_at"`
}

// ToResponse converts a Member model to a MemberResponse DTO
func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:        m.ID,
		Email:     m.Email,
		Nickname:  m.Nickname,
		CreatedAt: m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
