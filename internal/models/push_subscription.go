package models

import "time"

// PushSubscription: tarayıcı push aboneliği. Endpoint unique'dir; aynı endpoint tekrar
// kaydedilirse upsert yapılır. Push servisi 404/410 döndüğünde kayıt otomatik silinir.
type PushSubscription struct {
	ID        uint   `gorm:"primaryKey"`
	Endpoint  string `gorm:"size:500;uniqueIndex;not null"`
	P256dh    string `gorm:"size:255;not null"`
	Auth      string `gorm:"size:255;not null"`
	CourierID string `gorm:"size:40"` // kurye ile eşleştirme (opsiyonel)
	CreatedAt time.Time
}
