package enrollment

import "context"

// Ledger is the persistence surface the service needs. Implementations must
// make each mutating call atomic with respect to concurrent calls touching
// the same group.
type Ledger interface {
	Enroll(ctx context.Context, groupID, memberID int64) (*Enrollment, error)
	Decide(ctx context.Context, enrollmentID, ownerID int64, to Status) (*Enrollment, error)
	ListByMember(ctx context.Context, memberID int64, status string, limit, offset int) ([]*Enrollment, int, error)
	ListReceived(ctx context.Context, ownerID int64, status string, limit, offset int) ([]*Enrollment, int, error)
}

// Service handles enrollment business logic
type Service struct {
	repo Ledger
}

// NewService creates a new enrollment service
func NewService(repo Ledger) *Service {
	return &Service{repo: repo}
}

// Enroll submits an enrollment for the caller into a group
func (s *Service) Enroll(ctx context.Context, groupID, memberID int64) (*Enrollment, error) {
	return s.repo.Enroll(ctx, groupID, memberID)
}

// Accept lets the group owner accept a submitted enrollment
func (s *Service) Accept(ctx context.Context, enrollmentID, ownerID int64) (*Enrollment, error) {
	return s.repo.Decide(ctx, enrollmentID, ownerID, StatusAccepted)
}

// Reject lets the group owner reject a submitted enrollment
func (s *Service) Reject(ctx context.Context, enrollmentID, ownerID int64) (*Enrollment, error) {
	return s.repo.Decide(ctx, enrollmentID, ownerID, StatusRejected)
}

// ListMine retrieves the caller's enrollments
func (s *Service) ListMine(ctx context.Context, memberID int64, status string, page, perPage int) ([]*Enrollment, int, error) {
	limit, offset := paginate(page, perPage)
	return s.repo.ListByMember(ctx, memberID, status, limit, offset)
}

// ListReceived retrieves enrollments into groups the caller owns
func (s *Service) ListReceived(ctx context.Context, ownerID int64, status string, page, perPage int) ([]*Enrollment, int, error) {
	limit, offset := paginate(page, perPage)
	return s.repo.ListReceived(ctx, ownerID, status, limit, offset)
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
