package models

import "time"

type Cake struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"uniqueIndex:idx_cakes_name;not null;size:100"`
	ImageURL  string    `json:"imageUrl" gorm:"column:image_url;not null;type:text"`
	UserID    string    `json:"userId" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime;index"`

	// Associations
	User     User      `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:CakeID;constraint:OnDelete:CASCADE;"`
}

func (Cake) TableName() string {
	return "cakes"
}
