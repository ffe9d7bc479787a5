package group

// Request carries the mutable group fields. Create and update take the same
// shape; update overwrites every mutable field in place.
type Request struct {
	Title        string `json:"title" validate:"required,min=1,max=100"`
	Name         string `json:"name" validate:"required,min=1,max=100"`
	Content      string `json:"content" validate:"required,max=2000"`
	Food         string `json:"food" validate:"required"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Time         string `json:"time" validate:"required,datetime=15:04"`
	Maximum      int    `json:"maximum" validate:"required,min=2,max=10"`
	StoreName    string `json:"store_name" validate:"required,max=200"`
	StoreAddress string `json:"store_address" validate:"required,max=200"`
	Latitude     string `json:"latitude" validate:"required,latitude"`
	Longitude    string `json:"longitude" validate:"required,longitude"`
}

// Response represents a group in list and search results
type Response struct {
	ID            int64   `json:"id"`
	MemberID      int64   `json:"member_id"`
	Title         string  `json:"title"`
	Name          string  `json:"name"`
	Content       string  `json:"content"`
	Food          string  `json:"food"`
	GroupDateTime string  `json:"group_date_time"`
	Maximum       int     `json:"maximum"`
	Current       int     `json:"current"`
	StoreName     string  `json:"store_name"`
	StoreAddress  string  `json:"store_address"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	CreatedAt     string  `json:"created_at"`
}

// DetailResponse represents the full detail view of a group
type DetailResponse struct {
	Response
	ChatRoomID int64 `json:"chat_room_id"`
}

// ToResponse converts a Group model to a Response DTO
func (g *Group) ToResponse() *Response {
	return &Response{
		ID:            g.ID,
		MemberID:      g.MemberID,
		Title:         g.Title,
		Name:          g.Name,
		Content:       g.Content,
		Food:          g.FoodType,
		GroupDateTime: g.GroupDateTime.Format("2006-01-02T15:04:05Z"),
		Maximum:       g.Maximum,
		Current:       g.Current,
		StoreName:     g.StoreName,
		StoreAddress:  g.StoreAddress,
		Latitude:      g.Location.Latitude,
		Longitude:     g.Location.Longitude,
		CreatedAt:     g.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToDetailResponse converts a Group model to a DetailResponse DTO
func (g *Group) ToDetailResponse(current int, chatRoomID int64) *DetailResponse {
	resp := g.ToResponse()
	resp.Current = current
	return &DetailResponse{
		Response:   *resp,
		ChatRoomID: chatRoomID,
	}
}
