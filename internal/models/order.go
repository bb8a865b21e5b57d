package models

import "time"

// Sipariş tipleri
const (
	OrderTypeDelivery = "delivery"
	OrderTypePickup   = "pickup"
)

// Sipariş kaynakları
const (
	OrderSourceInHouse     = "in-house"
	OrderSourceYemeksepeti = "yemeksepeti"
	OrderSourceGetir       = "getir"
)

// Sipariş durumları
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled" // tanımlı ama henüz hiçbir geçiş bu duruma yazmıyor
)

type Order struct {
	ID              uint   `gorm:"primaryKey"`
	OrderNumber     int    `gorm:"uniqueIndex;not null"` // dışarıya görünen sıra numarası
	Type            string `gorm:"size:20;not null"`
	Source          string `gorm:"size:20;not null"`
	Status          string `gorm:"size:20;not null;default:pending"`
	Items           []OrderItem
	CustomerName    string `gorm:"size:100"`
	CustomerPhone   string `gorm:"size:30"`
	CustomerAddress string `gorm:"size:500"`
	Lat             *float64
	Lng             *float64
	DriverID        string  `gorm:"size:40"`
	TotalAmount     float64 `gorm:"not null"` // kasadan gelen tutar, sistem fiyat hesaplamaz
	Notes           string  `gorm:"size:500"`
	ReadyAt         *time.Time
	DeliveredAt     *time.Time
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

// OrderItem: sipariş kalemi. MenuItemID string tutulur; menü kaydı sonradan silinmiş
// olabilir, çözümleme bildirim anında yapılır ve bulunamazsa placeholder kullanılır.
type OrderItem struct {
	ID         uint   `gorm:"primaryKey"`
	OrderID    uint   `gorm:"index;not null"`
	MenuItemID string `gorm:"size:40;not null"`
	Quantity   int    `gorm:"not null"`
	Notes      string `gorm:"size:255"`
}
