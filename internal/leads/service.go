package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nexvstar/site/internal/common"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput  = errors.New("leads: invalid input")
	ErrInvalidStatus = errors.New("leads: invalid demo request status")
)

// Enqueuer schedules a sales notification for a newly stored record.
type Enqueuer interface {
	Enqueue(ctx context.Context, kind string, recordID uint64) error
}

type LeadInput struct {
	Name    string `json:"name" validate:"required,max=128"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Company string `json:"company" validate:"max=128"`
	Phone   string `json:"phone" validate:"max=32"`
	Message string `json:"message" validate:"required,max=5000"`
	Source  string `json:"source" validate:"max=64"`
}

type DemoInput struct {
	Name          string    `json:"name" validate:"required,max=128"`
	Email         string    `json:"email" validate:"required,email,max=255"`
	Company       string    `json:"company" validate:"required,max=128"`
	Phone         string    `json:"phone" validate:"required,max=32"`
	PreferredDate time.Time `json:"preferred_date"`
	Message       string    `json:"message" validate:"max=5000"`
}

type Service struct {
	repo     *Repo
	notify   Enqueuer
	validate *validator.Validate
	log      *zap.Logger
	now      func() time.Time
}

func NewService(repo *Repo, notify Enqueuer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		notify:   notify,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
		now:      time.Now,
	}
}

func (s *Service) ready() error {
	if s == nil || s.repo == nil || s.repo.db == nil {
		return common.ErrUnavailable
	}
	return nil
}

func (s *Service) check(v any) error {
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// AddLead stores a contact-form lead and returns its id.
func (s *Service) AddLead(ctx context.Context, in LeadInput) (uint64, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Company = strings.TrimSpace(in.Company)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Message = strings.TrimSpace(in.Message)
	in.Source = strings.TrimSpace(in.Source)
	if in.Source == "" {
		in.Source = DefaultSource
	}
	if err := s.check(in); err != nil {
		return 0, err
	}

	l := &Lead{
		Name:    in.Name,
		Email:   in.Email,
		Company: in.Company,
		Phone:   in.Phone,
		Message: in.Message,
		Source:  in.Source,
	}
	if err := s.repo.InsertLead(ctx, l); err != nil {
		return 0, err
	}
	s.enqueue(ctx, KindLead, l.ID)
	return l.ID, nil
}

// SubmitDemoRequest stores a pending demo request and returns its id.
func (s *Service) SubmitDemoRequest(ctx context.Context, in DemoInput) (uint64, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Company = strings.TrimSpace(in.Company)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Message = strings.TrimSpace(in.Message)
	if err := s.check(in); err != nil {
		return 0, err
	}
	if in.PreferredDate.IsZero() {
		in.PreferredDate = s.now()
	}

	d := &DemoRequest{
		Name:          in.Name,
		Email:         in.Email,
		Company:       in.Company,
		Phone:         in.Phone,
		PreferredDate: in.PreferredDate,
		Message:       in.Message,
		Status:        DemoPending,
	}
	if err := s.repo.InsertDemoRequest(ctx, d); err != nil {
		return 0, err
	}
	s.enqueue(ctx, KindDemoRequest, d.ID)
	return d.ID, nil
}

// enqueue failures are logged only; the record is already stored.
func (s *Service) enqueue(ctx context.Context, kind string, id uint64) {
	if s.notify == nil {
		return
	}
	if err := s.notify.Enqueue(ctx, kind, id); err != nil {
		s.log.Warn("enqueue notification failed",
			zap.String("kind", kind), zap.Uint64("record_id", id), zap.Error(err))
	}
}

func (s *Service) GetLeads(ctx context.Context) ([]Lead, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.repo.ListLeads(ctx)
}

func (s *Service) GetDemoRequests(ctx context.Context) ([]DemoRequest, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.repo.ListDemoRequests(ctx)
}

func (s *Service) UpdateDemoRequestStatus(ctx context.Context, id uint64, status DemoStatus) error {
	if err := s.ready(); err != nil {
		return err
	}
	if !status.Valid() {
		return ErrInvalidStatus
	}
	return s.repo.UpdateDemoStatus(ctx, id, status)
}

// Notice renders the sales notification for a stored record.
func (s *Service) Notice(ctx context.Context, kind string, id uint64) (subject, body string, err error) {
	if err := s.ready(); err != nil {
		return "", "", err
	}
	switch kind {
	case KindLead:
		l, err := s.repo.GetLead(ctx, id)
		if err != nil {
			return "", "", err
		}
		subject = fmt.Sprintf("New lead: %s (%s)", l.Name, orDash(l.Company))
		body = fmt.Sprintf("Source: %s\nName: %s\nEmail: %s\nCompany: %s\nPhone: %s\nReceived: %s\n\n%s\n",
			l.Source, l.Name, l.Email, orDash(l.Company), orDash(l.Phone),
			l.CreatedAt.Format(time.RFC1123), l.Message)
		return subject, body, nil
	case KindDemoRequest:
		d, err := s.repo.GetDemoRequest(ctx, id)
		if err != nil {
			return "", "", err
		}
		subject = fmt.Sprintf("Demo request: %s (%s)", d.Name, d.Company)
		body = fmt.Sprintf("Name: %s\nEmail: %s\nCompany: %s\nPhone: %s\nPreferred date: %s\nStatus: %s\n\n%s\n",
			d.Name, d.Email, d.Company, d.Phone,
			d.PreferredDate.Format("02 Jan 2006 15:04 MST"), d.Status, orDash(d.Message))
		return subject, body, nil
	default:
		return "", "", fmt.Errorf("leads: unknown notice kind %q", kind)
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
