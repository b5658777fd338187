package models

import "time"

// Comment is immutable once written; it lives exactly as long as its cake.
type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Text      string    `json:"comment" gorm:"column:comment;not null;size:200"`
	YumFactor int       `json:"yumFactor" gorm:"column:yum_factor;not null;check:chk_comments_yum_factor,yum_factor >= 1 AND yum_factor <= 5"`
	CakeID    int64     `json:"cakeId" gorm:"not null;index"`
	UserID    string    `json:"userId" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`

	// Associations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}
