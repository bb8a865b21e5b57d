package models

import "time"

// KitchenNotification: mutfağa gönderilmiş bildirim kaydı. MessageID sadece ilişki
// göstergesidir; mesaj şablonu sonradan silinse bile bildirim kaydı kalır.
type KitchenNotification struct {
	ID        uint      `gorm:"primaryKey"`
	MessageID string    `gorm:"size:40"`
	Text      string    `gorm:"size:500;not null"`
	SentAt    time.Time `gorm:"index;not null"`
	Read      bool      `gorm:"not null;default:false"`
}
