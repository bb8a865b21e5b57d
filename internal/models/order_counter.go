package models

// OrderCounter: sunucu tarafı sipariş numarası sayacı. Tek satır tutulur (ID=1),
// Value son verilen numaradır ve atomik UPDATE ... RETURNING ile artırılır.
type OrderCounter struct {
	ID    uint  `gorm:"primaryKey"`
	Value int64 `gorm:"not null"`
}
