package comment

import (
	"context"

	"github.com/fkhayef/foodmate/pkg/apperr"
)

// Store is the persistence surface the service needs
type Store interface {
	GroupLive(ctx context.Context, groupID int64) error
	CreateComment(ctx context.Context, groupID, memberID int64, content string) (*Comment, error)
	GetComment(ctx context.Context, commentID int64) (*Comment, error)
	UpdateComment(ctx context.Context, commentID int64, content string) (*Comment, error)
	DeleteComment(ctx context.Context, commentID int64) error
	CreateReply(ctx context.Context, commentID, memberID int64, content string) (*Reply, error)
	GetReply(ctx context.Context, replyID int64) (*Reply, error)
	UpdateReply(ctx context.Context, replyID int64, content string) (*Reply, error)
	DeleteReply(ctx context.Context, replyID int64) error
	ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]*Comment, int, error)
}

// Service implements the discussion thread rules: strict path containment
// (group -> comment -> reply), author-only mutation, and replies-before-
// comment deletion.
type Service struct {
	repo Store
}

// NewService creates a new comment service
func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

// AddComment creates a comment on a live group
func (s *Service) AddComment(ctx context.Context, groupID, memberID int64, req *Request) (*Comment, error) {
	if err := s.repo.GroupLive(ctx, groupID); err != nil {
		return nil, err
	}
	return s.repo.CreateComment(ctx, groupID, memberID, req.Content)
}

// AddReply creates a reply on a comment that belongs to the path's group
func (s *Service) AddReply(ctx context.Context, groupID, commentID, memberID int64, req *Request) (*Reply, error) {
	if err := s.repo.GroupLive(ctx, groupID); err != nil {
		return nil, err
	}
	if _, err := s.validateComment(ctx, groupID, commentID); err != nil {
		return nil, err
	}
	return s.repo.CreateReply(ctx, commentID, memberID, req.Content)
}

// UpdateComment overwrites a comment's content; author only
func (s *Service) UpdateComment(ctx context.Context, groupID, commentID, memberID int64, req *Request) (*Comment, error) {
	if err := s.repo.GroupLive(ctx, groupID); err != nil {
		return nil, err
	}
	comment, err := s.validateComment(ctx, groupID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.MemberID != memberID {
		return nil, apperr.ErrNoModifyPermissionComment
	}
	return s.repo.UpdateComment(ctx, commentID, req.Content)
}

// UpdateReply overwrites a reply's content; author only
func (s *Service) UpdateReply(ctx context.Context, groupID, commentID, replyID, memberID int64, req *Request) (*Reply, error) {
	if err := s.repo.GroupLive(ctx, groupID); err != nil {
		return nil, err
	}
	if _, err := s.validateComment(ctx, groupID, commentID); err != nil {
		return nil, err
	}
	reply, err := s.validateReply(ctx, commentID, replyID)
	if err != nil {
		return nil, err
	}
	if reply.MemberID != memberID {
		return nil, apperr.ErrNoModifyPermissionReply
	}
	return s.repo.UpdateReply(ctx, replyID, req.Content)
}

// DeleteComment removes a comment and its replies; author only
func (s *Service) DeleteComment(ctx context.Context, groupID, commentID, memberID int64) error {
	if err := s.repo.GroupLive(ctx, groupID); err != nil {
		return err
	}
	comment, err := s.validateComment(ctx, groupID, commentID)
	if err != nil {
		return err
	}
	if comment.MemberID != memberID {
		return apperr.ErrNoDeletePermissionComment
	}
	return s.repo.DeleteComment(ctx, commentID)
}

// DeleteReply removes a single reply; author only
func (s *Service) DeleteReply(ctx context.Context, groupID, commentID, replyID, memberID int64) error {
	if err := s.repo.GroupLive(ctx, groupID); err != nil {
		return err
	}
	if _, err := s.validateComment(ctx, groupID, commentID); err != nil {
		return err
	}
	reply, err := s.validateReply(ctx, commentID, replyID)
	if err != nil {
		return err
	}
	if reply.MemberID != memberID {
		return apperr.ErrNoDeletePermissionReply
	}
	return s.repo.DeleteReply(ctx, replyID)
}

// List retrieves a page of comments with their replies for a live group
func (s *Service) List(ctx context.Context, groupID int64, page, perPage int) ([]*Comment, int, error) {
	if err := s.repo.GroupLive(ctx, groupID); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByGroup(ctx, groupID, perPage, offset)
}

// validateComment verifies the comment exists and belongs to the path's group
func (s *Service) validateComment(ctx context.Context, groupID, commentID int64) (*Comment, error) {
	comment, err := s.repo.GetComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, apperr.ErrCommentNotFound
	}
	if comment.GroupID != groupID {
		return nil, apperr.ErrInvalidAddress
	}
	return comment, nil
}

// validateReply verifies the reply exists and belongs to the path's comment
func (s *Service) validateReply(ctx context.Context, commentID, replyID int64) (*Reply, error) {
	reply, err := s.repo.GetReply(ctx, replyID)
	if err != nil {
		return nil, err
	}
	if reply == nil {
		return nil, apperr.ErrReplyNotFound
	}
	if reply.CommentID != commentID {
		return nil, apperr.ErrInvalidAddress
	}
	return reply, nil
}
