package newsletter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nexvstar/site/internal/common"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Status string

const (
	StatusActive       Status = "active"
	StatusUnsubscribed Status = "unsubscribed"
)

var (
	ErrInvalidEmail = errors.New("newsletter: invalid email")
	ErrNotFound     = errors.New("newsletter: subscriber not found")
)

type Subscriber struct {
	Email     string    `gorm:"primaryKey;type:varchar(255)" json:"email"`
	Status    Status    `gorm:"type:varchar(16);index;not null" json:"status"`
	CreatedAt time.Time `json:"timestamp"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Subscriber) TableName() string { return "subscribers" }

type Service struct {
	db       *gorm.DB
	validate *validator.Validate
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, validate: validator.New()}
}

func (s *Service) normalize(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validate.Var(email, "required,email,max=255"); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return email, nil
}

// Subscribe creates the subscriber or reactivates an unsubscribed one.
func (s *Service) Subscribe(ctx context.Context, email string) error {
	if s == nil || s.db == nil {
		return common.ErrUnavailable
	}
	email, err := s.normalize(email)
	if err != nil {
		return err
	}
	sub := Subscriber{Email: email, Status: StatusActive}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]any{"status": StatusActive, "updated_at": time.Now()}),
	}).Create(&sub).Error
}

func (s *Service) Unsubscribe(ctx context.Context, email string) error {
	if s == nil || s.db == nil {
		return common.ErrUnavailable
	}
	email, err := s.normalize(email)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&Subscriber{}).
		Where("email = ?", email).
		Update("status", StatusUnsubscribed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) GetSubscribers(ctx context.Context) ([]Subscriber, error) {
	if s == nil || s.db == nil {
		return nil, common.ErrUnavailable
	}
	var out []Subscriber
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
