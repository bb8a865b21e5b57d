package kitchen

import (
	"strconv"
	"strings"
	"time"

	"tabldot-backend/internal/database"
	"tabldot-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type MessageResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateMessageRequest struct {
	Text string `json:"text"`
}

func mapMessage(m models.KitchenMessage) MessageResponse {
	return MessageResponse{
		ID:        strconv.FormatUint(uint64(m.ID), 10),
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
}

// GET /api/kitchen-messages (en yeni en üstte)
func ListMessagesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var msgs []models.KitchenMessage
		if err := database.DB.Order("created_at desc").Find(&msgs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mesajlar listelenemedi")
		}

		res := make([]MessageResponse, 0, len(msgs))
		for _, m := range msgs {
			res = append(res, mapMessage(m))
		}
		return c.JSON(fiber.Map{"ok": true, "messages": res})
	}
}

// POST /api/kitchen-messages
func CreateMessageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMessageRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		text := strings.TrimSpace(body.Text)
		if text == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Mesaj metni gereklidir")
		}

		m := models.KitchenMessage{Text: text}
		if err := database.DB.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mesaj kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "message": mapMessage(m)})
	}
}

// DELETE /api/kitchen-messages/:id
// Kayıt yoksa da {ok:true} döner: hedef durum "mesaj DB'de yok" ve bu zaten sağlanmış.
func DeleteMessageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if pk, err := strconv.ParseUint(id, 10, 64); err == nil {
			if err := database.DB.Delete(&models.KitchenMessage{}, "id = ?", pk).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Mesaj silinemedi")
			}
		}

		return c.JSON(fiber.Map{"ok": true})
	}
}
