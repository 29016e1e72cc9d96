package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pllus/main-blog/dto"
	"github.com/pllus/main-blog/internal/apperr"
	"github.com/pllus/main-blog/internal/models"
	"github.com/pllus/main-blog/internal/repository"
	"github.com/pllus/main-blog/internal/utils"
)

const defaultStoreTimeout = 5 * time.Second

type UserService struct {
	Users repository.UserRepository
	// Timeout bounds each store call; zero means 5s.
	Timeout time.Duration
	// HashCost is the bcrypt cost; zero means bcrypt.DefaultCost.
	HashCost int
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	return s.Users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	oid, err := utils.Oid(id, "user id")
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	return s.Users.FindByID(ctx, oid)
}

// Create registers a user. Usernames are not checked for uniqueness.
func (s *UserService) Create(ctx context.Context, req dto.CreateUserReq) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	username := strings.TrimSpace(req.Username)
	if name == "" || username == "" || req.Password == "" {
		return nil, apperr.Validation("name, username and password are required")
	}

	hash, err := HashPassword(req.Password, s.HashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperr.Validation("password must be at most 72 bytes")
	}
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	return s.Users.Create(ctx, models.User{
		Name:     name,
		Username: username,
		Password: hash,
	})
}

// Login returns the first user whose username and password both match.
func (s *UserService) Login(ctx context.Context, req dto.LoginReq) (*models.User, error) {
	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()

	candidates, err := s.Users.ListByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		if CheckPassword(candidates[i].Password, req.Password) {
			return &candidates[i], nil
		}
	}
	return nil, apperr.Auth("invalid username or password")
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = defaultStoreTimeout
	}
	return context.WithTimeout(ctx, d)
}
