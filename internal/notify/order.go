package notify

import (
	"fmt"
	"strconv"
	"strings"

	"tabldot-backend/internal/config"
	"tabldot-backend/internal/database"
	"tabldot-backend/internal/models"
)

// menuItemNames: sipariş kalemlerindeki menü id'lerini isimlere çözer. Menü kaydı
// silinmiş ya da id eski formatta olabilir; bulunamayanlar haritada yer almaz.
func menuItemNames(items []models.OrderItem) map[string]string {
	names := make(map[string]string)
	if len(items) == 0 {
		return names
	}

	// Sayıya çevrilemeyen id'ler (eski kayıtlar) sorguya girmez, placeholder alır
	ids := make([]uint64, 0, len(items))
	seen := make(map[string]bool)
	for _, it := range items {
		if seen[it.MenuItemID] {
			continue
		}
		seen[it.MenuItemID] = true
		if pk, err := strconv.ParseUint(it.MenuItemID, 10, 64); err == nil {
			ids = append(ids, pk)
		}
	}
	if len(ids) == 0 {
		return names
	}

	var menuItems []models.MenuItem
	if err := database.DB.Where("id IN ?", ids).Find(&menuItems).Error; err != nil {
		return names
	}
	for _, m := range menuItems {
		names[fmt.Sprint(m.ID)] = m.Name
	}
	return names
}

func itemLines(items []models.OrderItem, names map[string]string) []string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		name, ok := names[it.MenuItemID]
		if !ok {
			name = "Bilinmeyen ürün"
		}
		lines = append(lines, fmt.Sprintf("- %dx %s", it.Quantity, name))
	}
	return lines
}

// DeliveryNewOrder: yeni teslimat siparişini delivery topic'ine gönderir.
func DeliveryNewOrder(cfg *config.Config, order models.Order) {
	names := menuItemNames(order.Items)

	lines := []string{
		fmt.Sprintf("Sipariş #%d - %s ₺", order.OrderNumber, formatAmount(order.TotalAmount)),
		"",
		"Müşteri: " + order.CustomerName,
		"Tel: " + order.CustomerPhone,
		"Adres: " + order.CustomerAddress,
		"",
		"Ürünler:",
	}
	lines = append(lines, itemLines(order.Items, names)...)

	publish(cfg, cfg.NtfyDeliveryTopic, "Yeni Teslimat Siparisi", "package", strings.Join(lines, "\n"))
}

// KitchenNewOrder: yeni siparişi mutfak topic'ine gönderir. Her sipariş tipi için çağrılır.
func KitchenNewOrder(cfg *config.Config, order models.Order) {
	names := menuItemNames(order.Items)

	lines := []string{
		fmt.Sprintf("Sipariş #%d - %s - %s", order.OrderNumber, strings.ToUpper(order.Type), order.Source),
		"Toplam: " + formatAmount(order.TotalAmount) + " ₺",
	}
	if order.CustomerName != "" {
		lines = append(lines, "Müşteri: "+order.CustomerName)
	}
	lines = append(lines, "", "Ürünler:")
	lines = append(lines, itemLines(order.Items, names)...)

	publish(cfg, cfg.NtfyKitchenTopic, "Yeni Mutfak Siparisi", "chef,restaurant", strings.Join(lines, "\n"))
}
