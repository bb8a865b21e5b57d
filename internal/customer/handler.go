package customer

import (
	"strconv"
	"strings"

	"tabldot-backend/internal/database"
	"tabldot-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Eski müşteri panelinin beklediği yanıt şekli korunur: düz dizi/obje, {"message": ...} hataları.

type AddressLocationResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type AddressResponse struct {
	ID       string                   `json:"id"`
	Label    string                   `json:"label"`
	Address  string                   `json:"address"`
	Location *AddressLocationResponse `json:"location,omitempty"`
}

type CustomerResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Phone     string            `json:"phone"`
	Addresses []AddressResponse `json:"addresses"`
}

type CreateCustomerRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	AddressLabel string `json:"addressLabel"`
}

type UpdateCustomerRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

func mapCustomer(cu models.Customer) CustomerResponse {
	addresses := make([]AddressResponse, 0, len(cu.Addresses))
	for _, a := range cu.Addresses {
		res := AddressResponse{ID: a.PublicID, Label: a.Label, Address: a.Address}
		if a.Lat != nil && a.Lng != nil {
			res.Location = &AddressLocationResponse{Lat: *a.Lat, Lng: *a.Lng}
		}
		addresses = append(addresses, res)
	}
	return CustomerResponse{
		ID:        strconv.FormatUint(uint64(cu.ID), 10),
		Name:      cu.Name,
		Phone:     cu.Phone,
		Addresses: addresses,
	}
}

// GET /api/customers
func ListCustomersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var customers []models.Customer
		if err := database.DB.Preload("Addresses").Order("name asc").Find(&customers).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
		}

		res := make([]CustomerResponse, 0, len(customers))
		for _, cu := range customers {
			res = append(res, mapCustomer(cu))
		}
		return c.JSON(res)
	}
}

// POST /api/customers (müşteri tek adresle açılır, sonradan adres yönetimi yok)
func CreateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Geçersiz veri"})
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Phone = strings.TrimSpace(body.Phone)
		body.Address = strings.TrimSpace(body.Address)

		if body.Name == "" || body.Phone == "" || body.Address == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "İsim, telefon ve adres zorunludur"})
		}

		label := strings.TrimSpace(body.AddressLabel)
		if label == "" {
			label = "Ev"
		}

		cu := models.Customer{
			Name:  body.Name,
			Phone: body.Phone,
			Addresses: []models.CustomerAddress{
				{
					PublicID: "a" + uuid.NewString(),
					Label:    label,
					Address:  body.Address,
				},
			},
		}

		if err := database.DB.Create(&cu).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
		}
		return c.Status(fiber.StatusCreated).JSON(mapCustomer(cu))
	}
}

// PUT /api/customers/:id (sadece isim/telefon, adresler dokunulmaz)
func UpdateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cu, err := findCustomer(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Customer not found"})
		}

		var body UpdateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Geçersiz veri"})
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "İsim boş olamaz"})
			}
			cu.Name = name
		}
		if body.Phone != nil {
			phone := strings.TrimSpace(*body.Phone)
			if phone == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Telefon boş olamaz"})
			}
			cu.Phone = phone
		}

		if err := database.DB.Save(cu).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
		}
		return c.JSON(mapCustomer(*cu))
	}
}

// DELETE /api/customers/:id
func DeleteCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cu, err := findCustomer(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Customer not found"})
		}

		if err := database.DB.Where("customer_id = ?", cu.ID).Delete(&models.CustomerAddress{}).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
		}
		if err := database.DB.Delete(cu).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// findCustomer: birincil id, sonra eski kayıtların legacy_id alanı (uyumluluk)
func findCustomer(id string) (*models.Customer, error) {
	var cu models.Customer

	if pk, err := strconv.ParseUint(id, 10, 64); err == nil {
		if err := database.DB.Preload("Addresses").First(&cu, "id = ?", pk).Error; err == nil {
			return &cu, nil
		}
	}

	if err := database.DB.Preload("Addresses").First(&cu, "legacy_id = ?", id).Error; err == nil {
		return &cu, nil
	}

	return nil, fiber.ErrNotFound
}
