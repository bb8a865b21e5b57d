package models

import "time"

// KitchenMessage: mutfağa gönderilmek üzere kaydedilmiş hazır mesaj şablonu
type KitchenMessage struct {
	ID        uint   `gorm:"primaryKey"`
	Text      string `gorm:"size:500;not null"`
	CreatedAt time.Time
}
