package models

import "time"

type Notification struct {
	NotificationID int       `gorm:"primaryKey;column:notification_id" json:"notification_id"`
	RecipientID    int       `gorm:"column:recipient_id" json:"recipient_id"`
	SenderID       *int      `gorm:"column:sender_id" json:"sender_id,omitempty"`
	Message        string    `gorm:"column:message" json:"message"`
	Link           *string   `gorm:"column:link" json:"link,omitempty"`
	IsRead         bool      `gorm:"column:is_read" json:"is_read"`
	CreateAt       time.Time `gorm:"column:create_at" json:"create_at"`
}

func (Notification) TableName() string { return "notifications" }
