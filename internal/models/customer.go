package models

import "time"

type Customer struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Phone     string `gorm:"size:30;not null"`
	LegacyID  string `gorm:"size:40;index"` // eski kayıtlardaki özel id alanı (geriye dönük uyumluluk)
	Addresses []CustomerAddress
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomerAddress: müşteriye bağlı adres kaydı. Müşteri oluşturulurken tek adresle açılır,
// düzenleme sadece isim/telefon üzerinde çalışır.
type CustomerAddress struct {
	ID         uint   `gorm:"primaryKey"`
	CustomerID uint   `gorm:"index;not null"`
	PublicID   string `gorm:"size:40;not null"` // dışarıya dönen adres id'si
	Label      string `gorm:"size:50;not null"` // Ev, İş vs.
	Address    string `gorm:"size:500;not null"`
	Lat        *float64
	Lng        *float64
}
