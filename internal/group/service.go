package group

import (
	"context"
	"time"

	"github.com/fkhayef/foodmate/internal/chat"
	"github.com/fkhayef/foodmate/internal/food"
	"github.com/fkhayef/foodmate/pkg/apperr"
	"github.com/fkhayef/foodmate/pkg/geo"
)

// Groups may only be scheduled between one hour and one month from now.
const (
	reservationInterval = time.Hour
	reservationRange    = 1 // months
)

// Store is the persistence surface the service needs
type Store interface {
	Create(ctx context.Context, g *Group) (*Group, error)
	GetByID(ctx context.Context, id int64) (*Group, error)
	Update(ctx context.Context, g *Group) (*Group, error)
	SoftDelete(ctx context.Context, groupID, memberID int64) error
	Search(ctx context.Context, keyword string, limit, offset int) ([]*Group, int, error)
	ListToday(ctx context.Context, limit, offset int) ([]*Group, int, error)
	ListAll(ctx context.Context, limit, offset int) ([]*Group, int, error)
	ListNearby(ctx context.Context, point geo.Point, limit, offset int) ([]*Group, int, error)
}

// FoodFinder looks up food categories
type FoodFinder interface {
	GetByType(ctx context.Context, foodType string) (*food.Food, error)
}

// HeadCounter counts accepted enrollments for a group
type HeadCounter interface {
	CountAccepted(ctx context.Context, groupID int64) (int, error)
}

// RoomFinder retrieves the companion chat room for a group
type RoomFinder interface {
	GetByGroupID(ctx context.Context, groupID int64) (*chat.Room, error)
}

// Service handles group lifecycle business logic
type Service struct {
	repo        Store
	foods       FoodFinder
	enrollments HeadCounter
	rooms       RoomFinder
}

// NewService creates a new group service
func NewService(repo Store, foods FoodFinder, enrollments HeadCounter, rooms RoomFinder) *Service {
	return &Service{repo: repo, foods: foods, enrollments: enrollments, rooms: rooms}
}

// Create validates the draft and persists a new group with its chat room
func (s *Service) Create(ctx context.Context, memberID int64, req *Request) (*Group, error) {
	f, err := s.findFood(ctx, req.Food)
	if err != nil {
		return nil, err
	}

	groupDateTime, err := validateDateTime(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	point, err := geo.NewPoint(req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}

	g := &Group{
		MemberID:      memberID,
		Title:         req.Title,
		Name:          req.Name,
		Content:       req.Content,
		FoodID:        f.ID,
		FoodType:      f.Type,
		GroupDateTime: groupDateTime,
		Maximum:       req.Maximum,
		StoreName:     req.StoreName,
		StoreAddress:  req.StoreAddress,
		Location:      point,
		Status:        StatusActive,
	}

	return s.repo.Create(ctx, g)
}

// GetDetail retrieves a group with its current headcount and chat room.
// A missing chat room is a consistency fault, reported rather than defaulted.
func (s *Service) GetDetail(ctx context.Context, groupID int64) (*Group, *chat.Room, int, error) {
	g, err := s.getLive(ctx, groupID)
	if err != nil {
		return nil, nil, 0, err
	}

	accepted, err := s.enrollments.CountAccepted(ctx, groupID)
	if err != nil {
		return nil, nil, 0, err
	}
	current := accepted + 1 // the owner holds a seat

	room, err := s.rooms.GetByGroupID(ctx, groupID)
	if err != nil {
		return nil, nil, 0, err
	}
	if room == nil {
		// The delete cascade removes the room in its own transaction, so a
		// missing room usually means the group was deleted between our reads.
		// Re-read the group: an ordinary delete race is reported as the
		// deletion, a room missing from a live group is the real fault.
		if _, err := s.getLive(ctx, groupID); err != nil {
			return nil, nil, 0, err
		}
		return nil, nil, 0, apperr.ErrChatroomNotFound
	}

	return g, room, current, nil
}

// Update overwrites the mutable fields of a group. Only the owner may update.
func (s *Service) Update(ctx context.Context, groupID, memberID int64, req *Request) (*Group, error) {
	g, err := s.getLive(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if g.MemberID != memberID {
		return nil, apperr.ErrNoModifyPermissionGroup
	}

	f, err := s.findFood(ctx, req.Food)
	if err != nil {
		return nil, err
	}

	groupDateTime, err := validateDateTime(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	point, err := geo.NewPoint(req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}

	g.Title = req.Title
	g.Name = req.Name
	g.Content = req.Content
	g.FoodID = f.ID
	g.FoodType = f.Type
	g.GroupDateTime = groupDateTime
	g.Maximum = req.Maximum
	g.StoreName = req.StoreName
	g.StoreAddress = req.StoreAddress
	g.Location = point

	return s.repo.Update(ctx, g)
}

// Delete soft-deletes a group and cascades to enrollments and the chat room.
// Existence, liveness and ownership are checked inside the same transaction.
func (s *Service) Delete(ctx context.Context, groupID, memberID int64) error {
	return s.repo.SoftDelete(ctx, groupID, memberID)
}

// Search retrieves live groups matching a keyword
func (s *Service) Search(ctx context.Context, keyword string, page, perPage int) ([]*Group, int, error) {
	limit, offset := paginate(page, perPage)
	return s.repo.Search(ctx, keyword, limit, offset)
}

// ListToday retrieves live groups meeting today
func (s *Service) ListToday(ctx context.Context, page, perPage int) ([]*Group, int, error) {
	limit, offset := paginate(page, perPage)
	return s.repo.ListToday(ctx, limit, offset)
}

// ListAll retrieves all live upcoming groups
func (s *Service) ListAll(ctx context.Context, page, perPage int) ([]*Group, int, error) {
	limit, offset := paginate(page, perPage)
	return s.repo.ListAll(ctx, limit, offset)
}

// ListNearby retrieves live groups whose store is close to a coordinate
func (s *Service) ListNearby(ctx context.Context, point geo.Point, page, perPage int) ([]*Group, int, error) {
	limit, offset := paginate(page, perPage)
	return s.repo.ListNearby(ctx, point, limit, offset)
}

// getLive fetches a group and rejects missing or deleted ones
func (s *Service) getLive(ctx context.Context, groupID int64) (*Group, error) {
	g, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, apperr.ErrGroupNotFound
	}
	if g.Status == StatusDeleted {
		return nil, apperr.ErrGroupDeleted
	}
	return g, nil
}

func (s *Service) findFood(ctx context.Context, foodType string) (*food.Food, error) {
	f, err := s.foods.GetByType(ctx, foodType)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, apperr.ErrFoodNotFound
	}
	return f, nil
}

// validateDateTime parses the draft's date and time and enforces the
// scheduling window: strictly after now+1h and strictly before now+1month.
func validateDateTime(dateStr, timeStr string) (time.Time, error) {
	groupDateTime, err := time.ParseInLocation("2006-01-02 15:04", dateStr+" "+timeStr, time.Local)
	if err != nil {
		return time.Time{}, apperr.ErrOutOfDateRange
	}

	now := time.Now()
	if !groupDateTime.After(now.Add(reservationInterval)) ||
		!groupDateTime.Before(now.AddDate(0, reservationRange, 0)) {
		return time.Time{}, apperr.ErrOutOfDateRange
	}

	return groupDateTime, nil
}

func paginate(page, perPage int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return perPage, (page - 1) * perPage
}
