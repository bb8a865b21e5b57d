package main

import (
	"log"
	"strings"

	"tabldot-backend/internal/config"
	"tabldot-backend/internal/customer"
	"tabldot-backend/internal/database"
	"tabldot-backend/internal/kitchen"
	"tabldot-backend/internal/menu"
	"tabldot-backend/internal/order"
	"tabldot-backend/internal/push"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env dosyası bulunamadı, sistem environment değişkenleri kullanılıyor")
	}

	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"ok":      false,
					"message": e.Message,
				})
			}
			log.Println("Beklenmeyen hata:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"ok":      false,
				"message": "Sunucu hatası",
			})
		},
	})

	app.Use(logger.New())

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// Service worker push payload'ını buradan alır ({title, body, url})
	app.Static("/", "./public")

	api := app.Group("/api")

	// Menü
	api.Get("/menu", menu.ListMenuItemsHandler())
	api.Post("/menu", menu.CreateMenuItemHandler())
	api.Put("/menu/:id", menu.UpdateMenuItemHandler())
	api.Delete("/menu/:id", menu.DeleteMenuItemHandler())

	// Müşteriler
	api.Get("/customers", customer.ListCustomersHandler())
	api.Post("/customers", customer.CreateCustomerHandler())
	api.Put("/customers/:id", customer.UpdateCustomerHandler())
	api.Delete("/customers/:id", customer.DeleteCustomerHandler())

	// Siparişler
	api.Get("/orders", order.ListOrdersHandler())
	api.Post("/orders", order.CreateOrderHandler(cfg))
	api.Patch("/orders/:id", order.UpdateOrderHandler())
	api.Delete("/orders", order.DeleteAllOrdersHandler())

	// Mutfak mesajları ve bildirimleri
	api.Get("/kitchen-messages", kitchen.ListMessagesHandler())
	api.Post("/kitchen-messages", kitchen.CreateMessageHandler())
	api.Delete("/kitchen-messages/:id", kitchen.DeleteMessageHandler())

	api.Get("/kitchen-notifications", kitchen.ListNotificationsHandler())
	api.Post("/kitchen-notifications", kitchen.CreateNotificationHandler(cfg))
	api.Patch("/kitchen-notifications/:id", kitchen.UpdateNotificationHandler())
	api.Delete("/kitchen-notifications", kitchen.DeleteAllNotificationsHandler())

	api.Post("/kitchen-notify", kitchen.NotifyHandler(cfg))

	// Push abonelikleri
	api.Post("/save-subscription", push.SaveSubscriptionHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
