package leads

import (
	"context"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) InsertLead(ctx context.Context, l *Lead) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *Repo) GetLead(ctx context.Context, id uint64) (*Lead, error) {
	var l Lead
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// ListLeads returns leads newest first.
func (r *Repo) ListLeads(ctx context.Context) ([]Lead, error) {
	var out []Lead
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) InsertDemoRequest(ctx context.Context, d *DemoRequest) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *Repo) GetDemoRequest(ctx context.Context, id uint64) (*DemoRequest, error) {
	var d DemoRequest
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repo) ListDemoRequests(ctx context.Context) ([]DemoRequest, error) {
	var out []DemoRequest
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateDemoStatus returns gorm.ErrRecordNotFound for an unknown id. Setting
// the current status again is not an error.
func (r *Repo) UpdateDemoStatus(ctx context.Context, id uint64, status DemoStatus) error {
	if _, err := r.GetDemoRequest(ctx, id); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&DemoRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}
