package order

import (
	"tabldot-backend/internal/database"
)

// NextOrderNumber: sipariş numarası sayacını atomik olarak artırır ve yeni değeri
// döndürür. Tek UPDATE ... RETURNING ile çalıştığı için eşzamanlı istekler aynı
// numarayı alamaz. Sayaç satırı database.Migrate tarafından tohumlanır.
func NextOrderNumber() (int, error) {
	var value int64
	err := database.DB.
		Raw("UPDATE order_counters SET value = value + 1 WHERE id = 1 RETURNING value").
		Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return int(value), nil
}
