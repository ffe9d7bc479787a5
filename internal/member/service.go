package member

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/fkhayef/foodmate/pkg/apperr"
)

const tokenTTL = 24 * time.Hour

// Store is the persistence surface the service needs
type Store interface {
	Create(ctx context.Context, email, nickname, passwordHash string) (*Member, error)
	GetByID(ctx context.Context, id int64) (*Member, error)
	GetByEmail(ctx context.Context, email string) (*Member, error)
}

// Service handles member business logic
type Service struct {
	repo      Store
	jwtSecret []byte
}

// NewService creates a new member service
func NewService(repo Store, jwtSecret []byte) *Service {
	return &Service{repo: repo, jwtSecret: jwtSecret}
}

// Signup registers a new member with a bcrypt-hashed password
func (s *Service) Signup(ctx context.Context, req *SignupRequest) (*Member, error) {
	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.ErrEmailAlreadyInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, req.Email, req.Nickname, string(hash))
}

// Login verifies credentials and issues an access token
func (s *Service) Login(ctx context.Context, req *LoginRequest) (string, error) {
	member, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if member == nil {
		return "", apperr.ErrLoginFailed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.Password)); err != nil {
		return "", apperr.ErrLoginFailed
	}

	return s.signToken(member.ID)
}

// GetByID resolves a member ID to a member record
func (s *Service) GetByID(ctx context.Context, id int64) (*Member, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperr.ErrUserNotFound
	}
	return member, nil
}

func (s *Service) signToken(memberID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"member_id": memberID,
		"exp":       time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}
