package chat

import "time"

// Room is the chat-room companion record for a group. It shares the group's
// lifetime; the message protocol itself lives outside this service.
type Room struct {
	ID         int64     `json:"id"`
	GroupID    int64     `json:"group_id"`
	Attendance int       `json:"attendance"`
	CreatedAt  time.Time `json:"created_at"`
}
