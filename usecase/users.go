package usecase

import (
	"context"
	"fmt"
	"log"

	"main/dto"
	"main/model"
	"main/services"

	"github.com/google/uuid"
)

// UsersRepository is the user store surface the service needs.
type UsersRepository interface {
	AddUser(ctx context.Context, user *model.User) error
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUserByID(ctx context.Context, userID string) (*model.User, error)
	MarkVerified(ctx context.Context, userID string) error
}

// UserService handles registration, login and email verification. It is
// identity glue around the core: the note paths only ever see the user id
// the auth middleware extracts from the bearer token.
type UserService struct {
	Users   UsersRepository
	Mailer  services.Mailer
	From    string
	BaseURL string
}

func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest) (*model.User, string, error) {
	existing, err := s.Users.FindUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", fmt.Errorf("%w: email already registered", ErrConflict)
	}

	hashed, err := services.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		UserID:   uuid.New().String(),
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
	}
	if err := s.Users.AddUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := services.GenerateToken(user.UserID)
	if err != nil {
		return nil, "", err
	}

	// Verification email failures are logged, never surfaced.
	go s.sendVerificationEmail(user)

	return user, token, nil
}

func (s *UserService) sendVerificationEmail(user *model.User) {
	verifyToken, err := services.GenerateVerificationToken(user.UserID)
	if err != nil {
		log.Printf("Failed to generate verification token for %s: %v", user.Email, err)
		return
	}

	link := fmt.Sprintf("%s/api/auth/verify?token=%s", s.BaseURL, verifyToken)
	subject := "Verify your email"
	body := fmt.Sprintf("Click the link to verify your email: %s", link)

	if err := s.Mailer.Send(subject, body, s.From, []string{user.Email}); err != nil {
		log.Printf("Failed to send verification email to %s: %v", user.Email, err)
	}
}

func (s *UserService) Login(ctx context.Context, req dto.LoginRequest) (*model.User, string, error) {
	user, err := s.Users.FindUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	match, err := services.VerifyPassword(user.Password, req.Password)
	if err != nil || !match {
		return nil, "", fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	token, err := services.GenerateToken(user.UserID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Verify consumes a verification-link token and flips is_verified.
func (s *UserService) Verify(ctx context.Context, token string) error {
	userID, err := services.ParseVerificationToken(token)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.Users.MarkVerified(ctx, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
