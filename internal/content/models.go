package content

import "time"

type BlogPost struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Summary   string    `gorm:"type:text" json:"summary"`
	Content   string    `gorm:"type:longtext;not null" json:"content"`
	Author    string    `gorm:"type:varchar(128)" json:"author"`
	Category  string    `gorm:"type:varchar(64);index" json:"category"`
	ImageURL  string    `gorm:"type:varchar(512)" json:"image_url"`
	Tags      []string  `gorm:"serializer:json;type:text" json:"tags"`
	Date      time.Time `gorm:"index;not null" json:"date"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BlogPost) TableName() string { return "blog_posts" }

type Testimonial struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ClientName string    `gorm:"type:varchar(128);not null" json:"client_name"`
	Company    string    `gorm:"type:varchar(128)" json:"company"`
	Role       string    `gorm:"type:varchar(128)" json:"role"`
	Quote      string    `gorm:"type:text;not null" json:"quote"`
	Rating     int       `gorm:"not null" json:"rating"`
	AvatarURL  string    `gorm:"type:varchar(512)" json:"avatar_url"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Testimonial) TableName() string { return "testimonials" }

// PostView is a post as served to the blog pages.
type PostView struct {
	BlogPost
	ContentHTML    string `json:"content_html,omitempty"`
	ReadingMinutes int    `json:"reading_minutes"`
}

type PostInput struct {
	Title    string   `json:"title" binding:"required"`
	Summary  string   `json:"summary"`
	Content  string   `json:"content" binding:"required"`
	Author   string   `json:"author"`
	Category string   `json:"category"`
	ImageURL string   `json:"image_url"`
	Tags     []string `json:"tags"`
}

type TestimonialInput struct {
	ClientName string `json:"client_name" binding:"required"`
	Company    string `json:"company"`
	Role       string `json:"role"`
	Quote      string `json:"quote" binding:"required"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	AvatarURL  string `json:"avatar_url"`
}
