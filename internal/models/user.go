package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Username     string         `gorm:"size:150;uniqueIndex;not null" json:"username"`
	FirstName    string         `gorm:"size:150" json:"first_name"`
	LastName     string         `gorm:"size:150" json:"last_name"`
	PasswordHash string         `gorm:"not null" json:"-"`
}

// Follow links a follower to an author. The composite unique index is what
// keeps concurrent subscribe calls from creating duplicate rows.
type Follow struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_followee" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follower_followee;index" json:"followee_id"`
}

func (Follow) TableName() string {
	return "follows"
}
