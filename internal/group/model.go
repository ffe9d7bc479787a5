package group

import (
	"time"

	"github.com/fkhayef/foodmate/pkg/geo"
)

// Status is the group lifecycle state. DELETED is terminal; no further
// mutation of a deleted group is valid. The status column is authoritative
// for validity checks, deleted_at is kept for audit.
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusDeleted Status = "DELETED"
)

// Group represents a scheduled meetup with a bounded headcount
type Group struct {
	ID            int64      `json:"id"`
	MemberID      int64      `json:"member_id"`
	Title         string     `json:"title"`
	Name          string     `json:"name"`
	Content       string     `json:"content"`
	FoodID        int64      `json:"-"`
	GroupDateTime time.Time  `json:"group_date_time"`
	Maximum       int        `json:"maximum"`
	StoreName     string     `json:"store_name"`
	StoreAddress  string     `json:"store_address"`
	Location      geo.Point  `json:"location"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`

	// Populated from JOIN / aggregate
	FoodType string `json:"food,omitempty"`
	Current  int    `json:"current,omitempty"`
}
