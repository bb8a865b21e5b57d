package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	CORSOrigins string

	// ntfy relay ayarları. Topic tanımlı değilse ilgili kanal bildirim göndermez (no-op).
	NtfyServer        string
	NtfyKitchenTopic  string
	NtfyDeliveryTopic string
	NtfyToken         string

	// Web push (VAPID). Anahtarlar tanımlı değilse push gönderimi atlanır.
	VapidPublicKey  string
	VapidPrivateKey string
	VapidSubscriber string

	OrderNumberSeed int // ilk verilecek sipariş numarası
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:       getEnv("DATABASE_DSN", ""),
		CORSOrigins:       getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		NtfyServer:        getEnv("NTFY_SERVER", "https://ntfy.sh"),
		NtfyKitchenTopic:  getEnv("NTFY_KITCHEN_TOPIC", ""),
		NtfyDeliveryTopic: getEnv("NTFY_DELIVERY_TOPIC", ""),
		NtfyToken:         getEnv("NTFY_TOKEN", ""),
		VapidPublicKey:    getEnv("VAPID_PUBLIC_KEY", ""),
		VapidPrivateKey:   getEnv("VAPID_PRIVATE_KEY", ""),
		VapidSubscriber:   getEnv("VAPID_SUBSCRIBER", "mailto:destek@tabldot.local"),
		OrderNumberSeed:   getEnvInt("ORDER_NUMBER_SEED", 1),
	}

	if cfg.DatabaseDSN == "" {
		log.Fatal("[FATAL] DATABASE_DSN environment değişkeni tanımlanmamış!")
	}
	if cfg.NtfyKitchenTopic == "" {
		log.Println("[WARN] NTFY_KITCHEN_TOPIC tanımlı değil, mutfak bildirimleri gönderilmeyecek.")
	}
	if cfg.NtfyDeliveryTopic == "" {
		log.Println("[WARN] NTFY_DELIVERY_TOPIC tanımlı değil, teslimat bildirimleri gönderilmeyecek.")
	}
	if cfg.VapidPublicKey == "" || cfg.VapidPrivateKey == "" {
		log.Println("[WARN] VAPID anahtarları tanımlı değil, web push gönderimi atlanacak.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("[WARN] %s sayı değil, varsayılan %d kullanılıyor", key, def)
	}
	return def
}
