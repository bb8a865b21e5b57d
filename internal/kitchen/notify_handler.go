package kitchen

import (
	"strings"

	"tabldot-backend/internal/config"
	"tabldot-backend/internal/notify"

	"github.com/gofiber/fiber/v2"
)

type NotifyRequest struct {
	Text string `json:"text"`
}

// POST /api/kitchen-notify
// Sadece relay; kalıcı kayıt tutulmaz. Relay hatası yutulur, istemciye her zaman ok döner.
func NotifyHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body NotifyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		text := strings.TrimSpace(body.Text)
		if text == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz mesaj")
		}

		notify.KitchenMessage(cfg, text)

		return c.JSON(fiber.Map{"ok": true})
	}
}
