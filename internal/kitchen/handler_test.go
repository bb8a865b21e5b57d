package kitchen

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"tabldot-backend/internal/config"
	"tabldot-backend/internal/database"
	"tabldot-backend/internal/models"

	"github.com/gofiber/fiber/v2"
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

func newTestApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"ok": false, "message": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false, "message": "Sunucu hatası"})
		},
	})
	app.Get("/api/kitchen-messages", ListMessagesHandler())
	app.Post("/api/kitchen-messages", CreateMessageHandler())
	app.Delete("/api/kitchen-messages/:id", DeleteMessageHandler())
	app.Get("/api/kitchen-notifications", ListNotificationsHandler())
	app.Post("/api/kitchen-notifications", CreateNotificationHandler(cfg))
	app.Patch("/api/kitchen-notifications/:id", UpdateNotificationHandler())
	app.Delete("/api/kitchen-notifications", DeleteAllNotificationsHandler())
	app.Post("/api/kitchen-notify", NotifyHandler(cfg))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("payload marshal hatası: %v", err)
		}
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("istek hatası: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("yanıt decode hatası: %v", err)
	}
	return out
}

func TestKitchenMessagesNewestFirst(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(&config.Config{})

	texts := []string{"Tuz bitti", "Fırın yanıyor", "Servis hazır"}
	for i, text := range texts {
		m := models.KitchenMessage{Text: text}
		database.DB.Create(&m)
		database.DB.Model(&models.KitchenMessage{}).Where("id = ?", m.ID).
			Update("created_at", time.Now().Add(time.Duration(i)*time.Minute))
	}

	resp := doJSON(t, app, http.MethodGet, "/api/kitchen-messages", nil)
	body := decodeBody(t, resp)
	messages, _ := body["messages"].([]any)
	if len(messages) != 3 {
		t.Fatalf("3 mesaj bekleniyordu, gelen %d", len(messages))
	}
	first := messages[0].(map[string]any)
	if first["text"] != "Servis hazır" {
		t.Errorf("en yeni mesaj önce gelmeli, gelen %v", first["text"])
	}
}

func TestCreateKitchenMessageTrimsAndValidates(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(&config.Config{})

	resp := doJSON(t, app, http.MethodPost, "/api/kitchen-messages", fiber.Map{"text": "  Bulaşıklar birikti  "})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("beklenen 201, gelen %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	msg, _ := body["message"].(map[string]any)
	if msg["text"] != "Bulaşıklar birikti" {
		t.Errorf("metin trimlenmiş olmalı, gelen %v", msg["text"])
	}

	resp = doJSON(t, app, http.MethodPost, "/api/kitchen-messages", fiber.Map{"text": "   "})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("boş metin 400 dönmeli, gelen %d", resp.StatusCode)
	}
}

func TestDeleteKitchenMessageIdempotent(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(&config.Config{})

	m := models.KitchenMessage{Text: "Silinecek"}
	database.DB.Create(&m)

	for i := 0; i < 2; i++ {
		resp := doJSON(t, app, http.MethodDelete, "/api/kitchen-messages/1", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("silme %d: beklenen 200, gelen %d", i+1, resp.StatusCode)
		}
		body := decodeBody(t, resp)
		if body["ok"] != true {
			t.Errorf("silme %d: ok:true bekleniyordu: %v", i+1, body)
		}
	}
}

func TestCreateNotificationPersistsAndRelays(t *testing.T) {
	setupTestDB(t)

	var mu sync.Mutex
	var relayed []string
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		body, _ := io.ReadAll(req.Body)
		mu.Lock()
		relayed = append(relayed, string(body))
		mu.Unlock()
	}))
	defer relay.Close()

	cfg := &config.Config{NtfyServer: relay.URL, NtfyKitchenTopic: "kitchen-test"}
	app := newTestApp(cfg)

	resp := doJSON(t, app, http.MethodPost, "/api/kitchen-notifications", fiber.Map{
		"text":      "Sipariş hazır",
		"messageId": "5",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("beklenen 201, gelen %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	n, _ := body["notification"].(map[string]any)
	if n["read"] != false || n["messageId"] != "5" {
		t.Errorf("beklenmeyen bildirim gövdesi: %v", n)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(relayed) != 1 || relayed[0] != "Sipariş hazır" {
		t.Errorf("relay'e mesaj gitmedi: %v", relayed)
	}
}

func TestCreateNotificationSucceedsWhenRelayUnconfigured(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(&config.Config{}) // topic yok: relay no-op

	resp := doJSON(t, app, http.MethodPost, "/api/kitchen-notifications", fiber.Map{"text": "Acil"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("relay kapalıyken de 201 dönmeli, gelen %d", resp.StatusCode)
	}

	var count int64
	database.DB.Model(&models.KitchenNotification{}).Count(&count)
	if count != 1 {
		t.Errorf("bildirim kaydedilmeliydi, %d kayıt var", count)
	}
}

func TestUpdateNotificationRead(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(&config.Config{})

	n := models.KitchenNotification{Text: "Okunacak", SentAt: time.Now()}
	database.DB.Create(&n)

	// Bilinmeyen id → 404 {ok:false}
	resp := doJSON(t, app, http.MethodPatch, "/api/kitchen-notifications/999", fiber.Map{"read": true})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("beklenen 404, gelen %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["ok"] != false {
		t.Errorf("ok:false bekleniyordu: %v", body)
	}

	// Boş patch → 400
	resp = doJSON(t, app, http.MethodPatch, "/api/kitchen-notifications/1", fiber.Map{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("boş patch 400 dönmeli, gelen %d", resp.StatusCode)
	}

	// Geçerli id → 200, sonraki GET read:true gösterir
	resp = doJSON(t, app, http.MethodPatch, "/api/kitchen-notifications/1", fiber.Map{"read": true})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("beklenen 200, gelen %d", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/kitchen-notifications", nil)
	body = decodeBody(t, resp)
	notifications, _ := body["notifications"].([]any)
	if len(notifications) != 1 {
		t.Fatalf("1 bildirim bekleniyordu, gelen %d", len(notifications))
	}
	if notifications[0].(map[string]any)["read"] != true {
		t.Errorf("read:true görünmeliydi: %v", notifications[0])
	}
}

func TestListNotificationsNewestFirst(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(&config.Config{})

	base := time.Now().Add(-time.Hour)
	for i, text := range []string{"eski", "orta", "yeni"} {
		n := models.KitchenNotification{Text: text, SentAt: base.Add(time.Duration(i) * time.Minute)}
		database.DB.Create(&n)
	}

	resp := doJSON(t, app, http.MethodGet, "/api/kitchen-notifications", nil)
	body := decodeBody(t, resp)
	notifications, _ := body["notifications"].([]any)
	if len(notifications) != 3 {
		t.Fatalf("3 bildirim bekleniyordu, gelen %d", len(notifications))
	}
	if notifications[0].(map[string]any)["text"] != "yeni" {
		t.Errorf("sentAt azalan sıra bekleniyordu: %v", notifications)
	}
}

func TestDeleteAllNotifications(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(&config.Config{})

	for _, text := range []string{"a", "b"} {
		database.DB.Create(&models.KitchenNotification{Text: text, SentAt: time.Now()})
	}

	resp := doJSON(t, app, http.MethodDelete, "/api/kitchen-notifications", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("beklenen 200, gelen %d", resp.StatusCode)
	}

	var count int64
	database.DB.Model(&models.KitchenNotification{}).Count(&count)
	if count != 0 {
		t.Errorf("tüm bildirimler silinmeliydi, %d kaldı", count)
	}
}

func TestKitchenNotifyRelayOnly(t *testing.T) {
	setupTestDB(t)

	var mu sync.Mutex
	var relayed []string
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		body, _ := io.ReadAll(req.Body)
		mu.Lock()
		relayed = append(relayed, string(body))
		mu.Unlock()
	}))
	defer relay.Close()

	cfg := &config.Config{NtfyServer: relay.URL, NtfyKitchenTopic: "kitchen-test"}
	app := newTestApp(cfg)

	resp := doJSON(t, app, http.MethodPost, "/api/kitchen-notify", fiber.Map{"text": "  Kapanıyoruz  "})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("beklenen 200, gelen %d", resp.StatusCode)
	}

	mu.Lock()
	if len(relayed) != 1 || relayed[0] != "Kapanıyoruz" {
		t.Errorf("relay'e trimlenmiş metin gitmeliydi: %v", relayed)
	}
	mu.Unlock()

	// Kalıcı kayıt oluşmadı
	var count int64
	database.DB.Model(&models.KitchenNotification{}).Count(&count)
	if count != 0 {
		t.Errorf("kitchen-notify kayıt bırakmamalı, %d kayıt var", count)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/kitchen-notify", fiber.Map{"text": ""})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("boş metin 400 dönmeli, gelen %d", resp.StatusCode)
	}
}
