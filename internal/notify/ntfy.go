package notify

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"tabldot-backend/internal/config"
)

// relayClient: dış servis yanıt vermezse handler'ı süresiz bekletmemek için sınırlı timeout
var relayClient = &http.Client{Timeout: 10 * time.Second}

// publish: düz metin mesajı ntfy topic'ine POST eder. Topic tanımlı değilse uyarı
// loglanır ve çağrı no-op olur. Hatalar loglanır, asla yukarı taşınmaz.
func publish(cfg *config.Config, topic, title, tags, message string) {
	if topic == "" {
		log.Printf("[WARN] ntfy topic tanımlı değil, bildirim atlanıyor (title=%s)", title)
		return
	}

	url := strings.TrimRight(cfg.NtfyServer, "/") + "/" + topic

	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(message))
	if err != nil {
		log.Printf("ntfy istek oluşturulamadı: %v", err)
		return
	}
	req.Header.Set("Title", title) // sadece ASCII, HTTP header kısıtı
	req.Header.Set("Tags", tags)
	if cfg.NtfyToken != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.NtfyToken)
	}

	resp, err := relayClient.Do(req)
	if err != nil {
		log.Printf("ntfy bildirim hatası: %v", err)
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("ntfy bildirim reddedildi: %s %d", topic, resp.StatusCode)
	}
}

// KitchenMessage: serbest mutfak mesajını ("Gönder" butonu) mutfak topic'ine iletir.
func KitchenMessage(cfg *config.Config, text string) {
	publish(cfg, cfg.NtfyKitchenTopic, "Mutfak Mesaji", "chef,alert", text)
}

func formatAmount(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
