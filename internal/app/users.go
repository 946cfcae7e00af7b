package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hotel_booking/internal/domain"
)

type UserService struct {
	repo   domain.UserRepository
	tokens domain.TokenIssuer
	cost   int
	now    func() time.Time
}

func NewUserService(r domain.UserRepository, t domain.TokenIssuer, bcryptCost int) *UserService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{repo: r, tokens: t, cost: bcryptCost, now: time.Now}
}

type Registration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register stores a new user and returns a token for it.
// Returns domain.ErrConflict when the email is taken.
func (s *UserService) Register(ctx context.Context, in Registration) (string, domain.User, error) {
	email := normalizeEmail(in.Email)
	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return "", domain.User{}, domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", domain.User{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	u := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		CreatedAt:    s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.repo.InsertUser(ctx, u); err != nil {
		return "", domain.User{}, err
	}

	tok, err := s.tokens.Issue(u.ID)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("issue token: %w", err)
	}
	return tok, u, nil
}

// Login checks the credentials and returns a token and the user id.
// Unknown email and wrong password both yield domain.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (string, string, error) {
	u, err := s.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		return "", "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", "", fmt.Errorf("lookup user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", "", domain.ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(u.ID)
	if err != nil {
		return "", "", fmt.Errorf("issue token: %w", err)
	}
	return tok, u.ID, nil
}

func (s *UserService) Me(ctx context.Context, id string) (domain.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }
