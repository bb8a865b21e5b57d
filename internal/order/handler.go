package order

import (
	"log"
	"strconv"
	"strings"
	"time"

	"tabldot-backend/internal/config"
	"tabldot-backend/internal/database"
	"tabldot-backend/internal/models"
	"tabldot-backend/internal/notify"

	"github.com/gofiber/fiber/v2"
)

type LocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type OrderItemRequest struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
	Notes      string `json:"notes"`
}

type CreateOrderRequest struct {
	Type            string             `json:"type"`
	Source          string             `json:"source"`
	Items           []OrderItemRequest `json:"items"`
	CustomerName    string             `json:"customerName"`
	CustomerPhone   string             `json:"customerPhone"`
	CustomerAddress string             `json:"customerAddress"`
	AddressLocation *LocationRequest   `json:"addressLocation"`
	TotalAmount     float64            `json:"totalAmount"`
	Notes           string             `json:"notes"`
}

// UpdateOrderRequest: sadece bu alanlar güncellenebilir. OrderNumber güncelleme
// alanı değildir, id bulunamazsa yedek arama anahtarı olarak kullanılır.
type UpdateOrderRequest struct {
	Status      *string `json:"status"`
	DriverID    *string `json:"driverId"`
	OrderNumber *int    `json:"orderNumber"`
}

type LocationResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type OrderItemResponse struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
	Notes      string `json:"notes,omitempty"`
}

type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNumber     int                 `json:"orderNumber"`
	Type            string              `json:"type"`
	Source          string              `json:"source"`
	Status          string              `json:"status"`
	Items           []OrderItemResponse `json:"items"`
	CustomerName    string              `json:"customerName"`
	CustomerPhone   string              `json:"customerPhone"`
	CustomerAddress string              `json:"customerAddress"`
	AddressLocation *LocationResponse   `json:"addressLocation,omitempty"`
	DriverID        string              `json:"driverId,omitempty"`
	TotalAmount     float64             `json:"totalAmount"`
	Notes           string              `json:"notes,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
	ReadyAt         *time.Time          `json:"readyAt,omitempty"`
	DeliveredAt     *time.Time          `json:"deliveredAt,omitempty"`
}

func mapOrder(o models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			MenuItemID: it.MenuItemID,
			Quantity:   it.Quantity,
			Notes:      it.Notes,
		})
	}

	res := OrderResponse{
		ID:              strconv.FormatUint(uint64(o.ID), 10),
		OrderNumber:     o.OrderNumber,
		Type:            o.Type,
		Source:          o.Source,
		Status:          o.Status,
		Items:           items,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		DriverID:        o.DriverID,
		TotalAmount:     o.TotalAmount,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		ReadyAt:         o.ReadyAt,
		DeliveredAt:     o.DeliveredAt,
	}
	if o.Lat != nil && o.Lng != nil {
		res.AddressLocation = &LocationResponse{Lat: *o.Lat, Lng: *o.Lng}
	}
	return res
}

// POST /api/orders
func CreateOrderHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if len(body.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Sepet boş")
		}
		for _, it := range body.Items {
			if strings.TrimSpace(it.MenuItemID) == "" || it.Quantity < 1 {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz sipariş kalemi")
			}
		}

		if body.Type == "" {
			body.Type = models.OrderTypeDelivery
		}
		if body.Source == "" {
			body.Source = models.OrderSourceInHouse
		}

		if body.Type == models.OrderTypeDelivery {
			if body.CustomerName == "" || body.CustomerPhone == "" || body.CustomerAddress == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Müşteri bilgileri eksik")
			}
		}

		if body.TotalAmount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Toplam fiyat geçersiz")
		}

		number, err := NextOrderNumber()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş numarası alınamadı")
		}

		o := models.Order{
			OrderNumber:     number,
			Type:            body.Type,
			Source:          body.Source,
			Status:          models.OrderStatusPending,
			CustomerName:    body.CustomerName,
			CustomerPhone:   body.CustomerPhone,
			CustomerAddress: body.CustomerAddress,
			TotalAmount:     body.TotalAmount,
			Notes:           body.Notes,
		}
		if body.AddressLocation != nil {
			lat, lng := body.AddressLocation.Lat, body.AddressLocation.Lng
			o.Lat, o.Lng = &lat, &lng
		}
		for _, it := range body.Items {
			o.Items = append(o.Items, models.OrderItem{
				MenuItemID: it.MenuItemID,
				Quantity:   it.Quantity,
				Notes:      it.Notes,
			})
		}

		if err := database.DB.Create(&o).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş oluşturulamadı")
		}

		// Kayıt tamamlandı, bildirimler best-effort: hata sipariş yanıtını etkilemez.
		dispatchOrderNotifications(cfg, o)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "order": mapOrder(o)})
	}
}

func dispatchOrderNotifications(cfg *config.Config, o models.Order) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("sipariş bildirimi gönderilirken panic: %v", r)
		}
	}()

	notify.KitchenNewOrder(cfg, o)
	if o.Type == models.OrderTypeDelivery {
		notify.DeliveryNewOrder(cfg, o)
	}
	notify.PushNewOrder(cfg, o)
}

// GET /api/orders?scope=delivery-dashboard
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Order{}).Preload("Items")

		// Teslimat paneli sadece delivery siparişlerini ister
		if c.Query("scope") == "delivery-dashboard" {
			dbq = dbq.Where("type = ?", models.OrderTypeDelivery)
		}

		var orders []models.Order
		if err := dbq.Order("created_at asc").Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler listelenemedi")
		}

		res := make([]OrderResponse, 0, len(orders))
		for _, o := range orders {
			res = append(res, mapOrder(o))
		}
		return c.JSON(fiber.Map{"ok": true, "orders": res})
	}
}

// PATCH /api/orders/:id
func UpdateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body UpdateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		now := time.Now()
		updates := map[string]any{}

		if body.Status != nil {
			switch *body.Status {
			case models.OrderStatusPending, models.OrderStatusPreparing:
				updates["status"] = *body.Status
			case models.OrderStatusReady:
				updates["status"] = models.OrderStatusReady
				updates["ready_at"] = &now
			case models.OrderStatusDelivered:
				updates["status"] = models.OrderStatusDelivered
				updates["delivered_at"] = &now
			case models.OrderStatusCancelled:
				// Tanımlı durum ama geçiş operasyonu ürün kararı bekliyor
				return fiber.NewError(fiber.StatusBadRequest, "İptal durumu henüz desteklenmiyor")
			default:
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz durum")
			}
		}
		if body.DriverID != nil {
			updates["driver_id"] = *body.DriverID
		}

		if len(updates) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz güncelleme isteği")
		}

		o, err := findOrder(id, body.OrderNumber)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		if err := database.DB.Model(o).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş güncellenemedi")
		}

		if err := database.DB.Preload("Items").First(o, o.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş okunamadı")
		}
		return c.JSON(fiber.Map{"ok": true, "order": mapOrder(*o)})
	}
}

// findOrder: önce birincil id ile, bulunamazsa orderNumber ile arar. İkinci adım
// eski istemcilerle uyumluluk içindir; kaldırma planı eski panel emekliye ayrılınca.
func findOrder(id string, orderNumber *int) (*models.Order, error) {
	var o models.Order

	if pk, err := strconv.ParseUint(id, 10, 64); err == nil {
		if err := database.DB.First(&o, "id = ?", pk).Error; err == nil {
			return &o, nil
		}
	}

	if orderNumber != nil {
		if err := database.DB.First(&o, "order_number = ?", *orderNumber).Error; err == nil {
			return &o, nil
		}
	}

	return nil, fiber.ErrNotFound
}

// DELETE /api/orders (toplu temizlik, tekil silme yok)
func DeleteAllOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := database.DB.Where("1 = 1").Delete(&models.OrderItem{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler temizlenemedi")
		}

		res := database.DB.Where("1 = 1").Delete(&models.Order{})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler temizlenemedi")
		}

		return c.JSON(fiber.Map{"ok": true, "deleted": res.RowsAffected})
	}
}
