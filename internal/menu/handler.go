package menu

import (
	"strconv"
	"strings"

	"tabldot-backend/internal/database"
	"tabldot-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Bu paket eski menü panelinin beklediği yanıt şeklini korur: listeler düz dizi,
// kayıtlar düz obje döner, hatalar {"message": ...} formatındadır ({ok:...} zarfı yok).

type MenuItemResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Available      bool   `json:"available"`
	EstimatedStock int    `json:"estimatedStock"`
}

type CreateMenuItemRequest struct {
	Name           string `json:"name"`
	Available      *bool  `json:"available"`
	EstimatedStock *int   `json:"estimatedStock"`
}

type UpdateMenuItemRequest struct {
	Name           *string `json:"name"`
	Available      *bool   `json:"available"`
	EstimatedStock *int    `json:"estimatedStock"`
}

func mapMenuItem(m models.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:             strconv.FormatUint(uint64(m.ID), 10),
		Name:           m.Name,
		Available:      m.Available,
		EstimatedStock: m.EstimatedStock,
	}
}

// GET /api/menu
func ListMenuItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []models.MenuItem
		if err := database.DB.Order("name asc").Find(&items).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
		}

		res := make([]MenuItemResponse, 0, len(items))
		for _, m := range items {
			res = append(res, mapMenuItem(m))
		}
		return c.JSON(res)
	}
}

// POST /api/menu
func CreateMenuItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMenuItemRequest
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Geçersiz veri"})
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Name is required"})
		}

		m := models.MenuItem{Name: body.Name, Available: true}
		if body.Available != nil {
			m.Available = *body.Available
		}
		if body.EstimatedStock != nil {
			if *body.EstimatedStock < 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Stok negatif olamaz"})
			}
			m.EstimatedStock = *body.EstimatedStock
		}

		if err := database.DB.Create(&m).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
		}
		return c.Status(fiber.StatusCreated).JSON(mapMenuItem(m))
	}
}

// PUT /api/menu/:id
func UpdateMenuItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, err := findMenuItem(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Menu item not found"})
		}

		var body UpdateMenuItemRequest
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Geçersiz veri"})
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Name boş olamaz"})
			}
			m.Name = name
		}
		if body.Available != nil {
			m.Available = *body.Available
		}
		if body.EstimatedStock != nil {
			if *body.EstimatedStock < 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Stok negatif olamaz"})
			}
			m.EstimatedStock = *body.EstimatedStock
		}

		if err := database.DB.Save(m).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
		}
		return c.JSON(mapMenuItem(*m))
	}
}

// DELETE /api/menu/:id
func DeleteMenuItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, err := findMenuItem(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Menu item not found"})
		}

		if err := database.DB.Delete(m).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// findMenuItem: önce birincil id, bulunamazsa eski kayıtların legacy_id alanı
// (geriye dönük uyumluluk, eski kayıtlarla birlikte kaldırılacak)
func findMenuItem(id string) (*models.MenuItem, error) {
	var m models.MenuItem

	if pk, err := strconv.ParseUint(id, 10, 64); err == nil {
		if err := database.DB.First(&m, "id = ?", pk).Error; err == nil {
			return &m, nil
		}
	}

	if err := database.DB.First(&m, "legacy_id = ?", id).Error; err == nil {
		return &m, nil
	}

	return nil, fiber.ErrNotFound
}
