package notify

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"tabldot-backend/internal/config"
	"tabldot-backend/internal/database"
	"tabldot-backend/internal/models"

	webpush "github.com/SherClockHolmes/webpush-go"
)

var pushClient = &http.Client{Timeout: 10 * time.Second}

// pushPayload: public/sw.js'in beklediği şekil
type pushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// PushNewOrder: kayıtlı tüm push aboneliklerine yeni sipariş bildirimi gönderir.
// 404/410 dönen abonelikler (endpoint artık yok) silinir, diğer hatalar loglanıp
// abonelik korunur. Bir aboneliğin hatası diğerlerinin gönderimini etkilemez.
func PushNewOrder(cfg *config.Config, order models.Order) {
	if cfg.VapidPublicKey == "" || cfg.VapidPrivateKey == "" {
		log.Println("[WARN] VAPID anahtarları tanımlı değil, push bildirimi atlanıyor")
		return
	}

	var subs []models.PushSubscription
	if err := database.DB.Find(&subs).Error; err != nil {
		log.Printf("push abonelikleri okunamadı: %v", err)
		return
	}
	if len(subs) == 0 {
		return
	}

	body := fmt.Sprintf("%s ₺", formatAmount(order.TotalAmount))
	if order.CustomerName != "" {
		body = order.CustomerName + " - " + body
	}
	payload, err := json.Marshal(pushPayload{
		Title: fmt.Sprintf("Yeni sipariş #%d", order.OrderNumber),
		Body:  body,
		URL:   "/delivery",
	})
	if err != nil {
		log.Printf("push payload oluşturulamadı: %v", err)
		return
	}

	opts := &webpush.Options{
		HTTPClient:      pushClient,
		Subscriber:      cfg.VapidSubscriber,
		VAPIDPublicKey:  cfg.VapidPublicKey,
		VAPIDPrivateKey: cfg.VapidPrivateKey,
		TTL:             60,
	}

	for _, sub := range subs {
		target := &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys: webpush.Keys{
				P256dh: sub.P256dh,
				Auth:   sub.Auth,
			},
		}

		resp, err := webpush.SendNotification(payload, target, opts)
		if err != nil {
			log.Printf("push gönderim hatası (%s): %v", sub.Endpoint, err)
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
			// Endpoint artık geçersiz, tekrar tekrar denememek için kaydı sil
			if err := database.DB.Where("endpoint = ?", sub.Endpoint).
				Delete(&models.PushSubscription{}).Error; err != nil {
				log.Printf("geçersiz push aboneliği silinemedi (%s): %v", sub.Endpoint, err)
			} else {
				log.Printf("geçersiz push aboneliği silindi: %s", sub.Endpoint)
			}
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			log.Printf("push gönderimi reddedildi (%s): %d", sub.Endpoint, resp.StatusCode)
		}
	}
}
