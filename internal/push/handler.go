package push

import (
	"strconv"

	"tabldot-backend/internal/database"
	"tabldot-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

type Subscription struct {
	Endpoint string           `json:"endpoint"`
	Keys     SubscriptionKeys `json:"keys"`
}

type SaveSubscriptionRequest struct {
	Subscription *Subscription `json:"subscription"`
	CourierID    string        `json:"courierId"`
}

// POST /api/save-subscription
// Aynı endpoint tekrar kaydedilirse üzerine yazılır (upsert).
func SaveSubscriptionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SaveSubscriptionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		sub := body.Subscription
		if sub == nil || sub.Endpoint == "" || sub.Keys.P256dh == "" || sub.Keys.Auth == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz subscription verisi")
		}

		var record models.PushSubscription
		err := database.DB.
			Where(models.PushSubscription{Endpoint: sub.Endpoint}).
			Assign(models.PushSubscription{
				P256dh:    sub.Keys.P256dh,
				Auth:      sub.Keys.Auth,
				CourierID: body.CourierID,
			}).
			FirstOrCreate(&record).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Abonelik kaydedilemedi")
		}

		return c.JSON(fiber.Map{"ok": true, "subscriptionId": strconv.FormatUint(uint64(record.ID), 10)})
	}
}
