package database

import (
	"log"

	"tabldot-backend/internal/config"
	"tabldot-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := Migrate(DB, cfg.OrderNumberSeed); err != nil {
		log.Fatalf("Migration hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Migrate: şemayı kurar ve sipariş numarası sayacını tohumlar. Testler bunu
// in-memory sqlite üzerinde aynı şekilde çağırır.
func Migrate(db *gorm.DB, orderNumberSeed int) error {
	err := db.AutoMigrate(
		&models.MenuItem{},
		&models.Customer{},
		&models.CustomerAddress{},
		&models.Order{},
		&models.OrderItem{},
		&models.KitchenMessage{},
		&models.KitchenNotification{},
		&models.PushSubscription{},
		&models.OrderCounter{},
	)
	if err != nil {
		return err
	}

	// Sayaç satırı sadece ilk kurulumda tohumlanır; sonraki açılışlarda değer korunur.
	// Value "son verilen numara" olduğu için seed-1 yazılır.
	counter := models.OrderCounter{ID: 1, Value: int64(orderNumberSeed) - 1}
	if err := db.Where(models.OrderCounter{ID: 1}).FirstOrCreate(&counter).Error; err != nil {
		return err
	}

	return nil
}
