package content

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

// ListPosts returns posts newest first.
func (r *Repo) ListPosts(ctx context.Context) ([]BlogPost, error) {
	var out []BlogPost
	if err := r.db.WithContext(ctx).Order("date DESC, id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) GetPost(ctx context.Context, id uint64) (*BlogPost, error) {
	var p BlogPost
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) InsertPost(ctx context.Context, p *BlogPost) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// SavePost overwrites every column of an existing post.
func (r *Repo) SavePost(ctx context.Context, p *BlogPost) error {
	res := r.db.WithContext(ctx).Model(&BlogPost{ID: p.ID}).
		Select("title", "summary", "content", "author", "category", "image_url", "tags", "updated_at").
		Updates(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repo) DeletePost(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&BlogPost{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repo) ListTestimonials(ctx context.Context) ([]Testimonial, error) {
	var out []Testimonial
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) InsertTestimonial(ctx context.Context, t *Testimonial) error {
	return r.db.WithContext(ctx).Create(t).Error
}
