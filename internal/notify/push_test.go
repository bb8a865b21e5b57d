package notify

import (
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"tabldot-backend/internal/config"
	"tabldot-backend/internal/database"
	"tabldot-backend/internal/models"

	webpush "github.com/SherClockHolmes/webpush-go"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("sqlite açılamadı: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB alınamadı: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db, 1); err != nil {
		t.Fatalf("migrate hatası: %v", err)
	}

	database.DB = db
	t.Cleanup(func() { sqlDB.Close() })
}

// browserKeys: gerçek bir tarayıcı aboneliğindeki gibi geçerli P-256 anahtar çifti üretir
func browserKeys(t *testing.T) (p256dh, auth string) {
	t.Helper()

	priv, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("P-256 anahtarı üretilemedi: %v", err)
	}
	authBytes := make([]byte, 16)
	if _, err := rand.Read(authBytes); err != nil {
		t.Fatalf("auth secret üretilemedi: %v", err)
	}
	return base64.RawURLEncoding.EncodeToString(priv.PublicKey().Bytes()),
		base64.RawURLEncoding.EncodeToString(authBytes)
}

func testPushConfig(t *testing.T) *config.Config {
	t.Helper()

	privateKey, publicKey, err := webpush.GenerateVAPIDKeys()
	if err != nil {
		t.Fatalf("VAPID anahtarları üretilemedi: %v", err)
	}
	return &config.Config{
		VapidPublicKey:  publicKey,
		VapidPrivateKey: privateKey,
		VapidSubscriber: "mailto:test@tabldot.local",
	}
}

func TestPushNewOrderPrunesGoneSubscription(t *testing.T) {
	setupTestDB(t)

	var mu sync.Mutex
	hits := map[string]int{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		mu.Lock()
		hits[req.URL.Path]++
		mu.Unlock()
		if strings.HasPrefix(req.URL.Path, "/gone") {
			w.WriteHeader(http.StatusGone)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	goneP256dh, goneAuth := browserKeys(t)
	liveP256dh, liveAuth := browserKeys(t)

	gone := models.PushSubscription{Endpoint: srv.URL + "/gone/1", P256dh: goneP256dh, Auth: goneAuth}
	live := models.PushSubscription{Endpoint: srv.URL + "/live/1", P256dh: liveP256dh, Auth: liveAuth}
	database.DB.Create(&gone)
	database.DB.Create(&live)

	order := models.Order{OrderNumber: 7, CustomerName: "Ayşe", TotalAmount: 150}
	PushNewOrder(testPushConfig(t), order)

	mu.Lock()
	if hits["/gone/1"] != 1 || hits["/live/1"] != 1 {
		t.Errorf("iki aboneliğe de gönderim denenmeliydi: %v", hits)
	}
	mu.Unlock()

	// 410 dönen abonelik silinir, diğeri kalır
	var remaining []models.PushSubscription
	database.DB.Find(&remaining)
	if len(remaining) != 1 {
		t.Fatalf("tek abonelik kalmalıydı, gelen %d", len(remaining))
	}
	if remaining[0].Endpoint != srv.URL+"/live/1" {
		t.Errorf("yanlış abonelik silindi: %s", remaining[0].Endpoint)
	}
}

func TestPushNewOrderTransportErrorKeepsSubscription(t *testing.T) {
	setupTestDB(t)

	p256dh, auth := browserKeys(t)
	sub := models.PushSubscription{Endpoint: "http://127.0.0.1:1/push", P256dh: p256dh, Auth: auth}
	database.DB.Create(&sub)

	order := models.Order{OrderNumber: 8, TotalAmount: 90}
	PushNewOrder(testPushConfig(t), order)

	var count int64
	database.DB.Model(&models.PushSubscription{}).Count(&count)
	if count != 1 {
		t.Errorf("ağ hatasında abonelik korunmalı, %d kayıt kaldı", count)
	}
}

func TestPushNewOrderSkipsWithoutVapidKeys(t *testing.T) {
	setupTestDB(t)

	hit := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		hit = true
	}))
	defer srv.Close()

	p256dh, auth := browserKeys(t)
	database.DB.Create(&models.PushSubscription{Endpoint: srv.URL + "/p", P256dh: p256dh, Auth: auth})

	PushNewOrder(&config.Config{}, models.Order{OrderNumber: 9, TotalAmount: 10})

	if hit {
		t.Error("VAPID anahtarları yokken gönderim yapılmamalıydı")
	}
}
