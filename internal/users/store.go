package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nexvstar/site/internal/auth"
	"github.com/nexvstar/site/internal/common"
	"github.com/nexvstar/site/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("users: not found")
	ErrInvalidRole  = errors.New("users: invalid role")
	ErrInvalidInput = errors.New("users: invalid input")
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ready() error {
	if s == nil || s.db == nil {
		return common.ErrUnavailable
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Store) GetByID(ctx context.Context, id uint64) (*models.User, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var u models.User
	if err := s.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// Authenticate returns the user when the password matches. Unknown email and
// wrong password are both ErrNotFound.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrNotFound
	}
	return u, nil
}

// Create stores a user with a bcrypt hash of password.
func (s *Store) Create(ctx context.Context, p models.Profile, password string, role models.Role) (*models.User, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	email := strings.ToLower(strings.TrimSpace(p.Email))
	if email == "" || len(password) < 8 {
		return nil, fmt.Errorf("%w: email and a password of at least 8 characters required", ErrInvalidInput)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(p.Name),
		Company:      strings.TrimSpace(p.Company),
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// SaveProfile overwrites name, email and company.
func (s *Store) SaveProfile(ctx context.Context, id uint64, p models.Profile) (*models.User, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(p.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email required", ErrInvalidInput)
	}
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.User{ID: id}).
		Select("name", "email", "company").
		Updates(models.User{Name: strings.TrimSpace(p.Name), Email: email, Company: strings.TrimSpace(p.Company)}).Error; err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *Store) AssignRole(ctx context.Context, id uint64, role models.Role) error {
	if err := s.ready(); err != nil {
		return err
	}
	if !role.Valid() {
		return ErrInvalidRole
	}
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("role", role).Error
}
