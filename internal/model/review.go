package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TitleID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_author_title" json:"title_id"`
	Title   Title     `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	// One review per (author, title) pair, enforced by the composite
	// unique index so concurrent duplicates fail the second writer.
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_author_title" json:"-"`
	User   User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Text      string    `gorm:"type:text;not null" json:"text"`
	Score     int       `gorm:"not null" json:"score"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"pub_date"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`

	Comments []Comment `gorm:"foreignKey:ReviewID" json:"-"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}

type Comment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReviewID uuid.UUID `gorm:"type:uuid;not null" json:"review_id"`
	Review   Review    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID   uuid.UUID `gorm:"type:uuid;not null" json:"-"`
	User     User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"pub_date"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}
