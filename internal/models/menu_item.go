package models

import "time"

type MenuItem struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"size:100;not null"`
	Available      bool   `gorm:"not null"` // varsayılan (true) handler'da uygulanır
	EstimatedStock int    `gorm:"not null;default:0"` // tahmini porsiyon sayısı
	LegacyID       string `gorm:"size:40;index"`      // eski kayıtlardaki özel id alanı (geriye dönük uyumluluk)
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
