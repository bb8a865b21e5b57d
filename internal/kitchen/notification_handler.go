package kitchen

import (
	"strconv"
	"strings"
	"time"

	"tabldot-backend/internal/config"
	"tabldot-backend/internal/database"
	"tabldot-backend/internal/models"
	"tabldot-backend/internal/notify"

	"github.com/gofiber/fiber/v2"
)

type NotificationResponse struct {
	ID        string    `json:"id"`
	MessageID string    `json:"messageId,omitempty"`
	Text      string    `json:"text"`
	SentAt    time.Time `json:"sentAt"`
	Read      bool      `json:"read"`
}

type CreateNotificationRequest struct {
	Text      string `json:"text"`
	MessageID string `json:"messageId"`
}

type UpdateNotificationRequest struct {
	Read *bool `json:"read"`
}

func mapNotification(n models.KitchenNotification) NotificationResponse {
	return NotificationResponse{
		ID:        strconv.FormatUint(uint64(n.ID), 10),
		MessageID: n.MessageID,
		Text:      n.Text,
		SentAt:    n.SentAt,
		Read:      n.Read,
	}
}

// GET /api/kitchen-notifications (gönderim zamanına göre, en yeni en üstte)
func ListNotificationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var notifications []models.KitchenNotification
		if err := database.DB.Order("sent_at desc").Find(&notifications).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bildirimler listelenemedi")
		}

		res := make([]NotificationResponse, 0, len(notifications))
		for _, n := range notifications {
			res = append(res, mapNotification(n))
		}
		return c.JSON(fiber.Map{"ok": true, "notifications": res})
	}
}

// POST /api/kitchen-notifications
// Önce DB'ye yazar, sonra ntfy üzerinden mutfağa iletir. Relay hatası kaydı geri almaz.
func CreateNotificationHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateNotificationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		text := strings.TrimSpace(body.Text)
		if text == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Bildirim metni gereklidir")
		}

		n := models.KitchenNotification{
			MessageID: body.MessageID,
			Text:      text,
			SentAt:    time.Now(),
			Read:      false,
		}
		if err := database.DB.Create(&n).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bildirim kaydedilemedi")
		}

		notify.KitchenMessage(cfg, text)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "notification": mapNotification(n)})
	}
}

// PATCH /api/kitchen-notifications/:id ({read: bool})
func UpdateNotificationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body UpdateNotificationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}
		if body.Read == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz güncelleme isteği")
		}

		pk, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bildirim bulunamadı")
		}

		var n models.KitchenNotification
		if err := database.DB.First(&n, "id = ?", pk).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bildirim bulunamadı")
		}

		if err := database.DB.Model(&n).Update("read", *body.Read).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bildirim güncellenemedi")
		}

		return c.JSON(fiber.Map{"ok": true})
	}
}

// DELETE /api/kitchen-notifications (toplu temizlik)
func DeleteAllNotificationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := database.DB.Where("1 = 1").Delete(&models.KitchenNotification{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bildirimler temizlenemedi")
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}
