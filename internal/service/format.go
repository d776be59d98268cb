package service

import (
	"fmt"
	"strings"

	"github.com/leanlee/shopchat/internal/models"
)

const productMenuText = "What would you like to browse?\n" +
	"1) Trending products\n" +
	"2) On-sale products\n" +
	"3) Men\n" +
	"4) Women\n" +
	"5) Accessories\n" +
	"6) Go back to main menu\n" +
	"Please key in your choice (1-6):"

const feedbackMenuText = "Before you go, how was your experience today?\n" +
	"1) Excellent\n" +
	"2) Average\n" +
	"3) Poor\n" +
	"4) Others\n" +
	"Please reply with 1-4:"

type menuEntry struct {
	label string
	slug  string
}

var mainMenu = []menuEntry{
	{"Track Your Order", "track_order"},
	{"Create Your Account", "create_account"},
	{"Return & Refund", "return_policy"},
	{"Product Damage", "package_lost_damaged"},
	{"Contact Us", "contact_customer_support"},
	{"Need agent support", "send_glink"},
}

func mainMenuText() string {
	lines := []string{"Main menu:"}
	for i, entry := range mainMenu {
		lines = append(lines, fmt.Sprintf("%d) %s", i+1, entry.label))
	}
	lines = append(lines, "Please enter 1-6:")
	return strings.Join(lines, "\n")
}

// mainMenuSlug maps a 1-based menu choice to its intent slug, or "".
func mainMenuSlug(n int) string {
	if n < 1 || n > len(mainMenu) {
		return ""
	}
	return mainMenu[n-1].slug
}

func sectionURL(base string, section models.ProductSection) string {
	switch section {
	case models.SectionTrending:
		return base + "?sort=trending"
	case models.SectionOnSale:
		return base + "?sale=1"
	case models.SectionMen:
		return base + "/men"
	case models.SectionWomen:
		return base + "/women"
	case models.SectionAccessories:
		return base + "/accessories"
	}
	return base
}

// priceText renders the display price, preferring the sale price when the
// product is flagged on sale. Empty when no price is known.
func priceText(p *models.Product) string {
	switch {
	case p.IsOnSale && p.SalePrice != nil && p.Price != nil:
		return fmt.Sprintf("RM%.2f (was RM%.2f)", *p.SalePrice, *p.Price)
	case p.SalePrice != nil && p.Price == nil:
		return fmt.Sprintf("RM%.2f", *p.SalePrice)
	case p.Price != nil:
		return fmt.Sprintf("RM%.2f", *p.Price)
	}
	return ""
}

func formatProductList(products []models.Product, moreURL string) string {
	lines := []string{"Here are some items:"}
	for i, p := range products {
		price := priceText(&p)
		if price == "" {
			price = "Price N/A"
		}
		sku := ""
		if p.SKU != "" {
			sku = fmt.Sprintf(" • SKU %s", p.SKU)
		}
		lines = append(lines, fmt.Sprintf("%d) %s — %s%s", i+1, p.Name, price, sku))
	}
	lines = append(lines, "", "Reply with an item number to see details, or type 'menu' to go back.")
	if moreURL != "" {
		lines = append(lines, "More products: "+moreURL)
	}
	return strings.Join(lines, "\n")
}

// formatProductAnswer renders a concise answer for one facet of a product,
// falling back to an overview when the facet is unknown or empty.
func formatProductAnswer(p *models.Product, facet string) string {
	name := p.Name
	if name == "" {
		name = p.SKU
	}
	if name == "" {
		name = "this item"
	}

	switch facet {
	case "sizes":
		if p.Sizes != "" {
			return fmt.Sprintf("%s sizes available: %s.", name, p.Sizes)
		}
	case "colors":
		if p.Colors != "" {
			return fmt.Sprintf("%s color options: %s.", name, p.Colors)
		}
	case "price":
		if pt := priceText(p); pt != "" {
			return fmt.Sprintf("%s price: %s.", name, pt)
		}
	case "material":
		if p.Material != "" {
			return fmt.Sprintf("%s material: %s.", name, p.Material)
		}
	case "stock":
		if p.StockQty != nil {
			return fmt.Sprintf("%s stock: %d unit(s) available.", name, *p.StockQty)
		}
	case "shipping":
		if p.ShippingNote != "" {
			return fmt.Sprintf("Shipping for %s: %s.", name, p.ShippingNote)
		}
	case "returns":
		if p.ReturnNote != "" {
			return fmt.Sprintf("Returns for %s: %s.", name, p.ReturnNote)
		}
	case "desc":
		if p.Description != "" {
			return fmt.Sprintf("%s: %s", name, p.Description)
		}
	}

	var parts []string
	if p.Sizes != "" {
		parts = append(parts, "Sizes: "+p.Sizes)
	}
	if p.Colors != "" {
		parts = append(parts, "Colors: "+p.Colors)
	}
	if p.Material != "" {
		parts = append(parts, "Material: "+p.Material)
	}
	if pt := priceText(p); pt != "" {
		parts = append(parts, "Price: "+pt)
	}
	if p.ShippingNote != "" {
		parts = append(parts, "Shipping: "+p.ShippingNote)
	}
	if p.ReturnNote != "" {
		parts = append(parts, "Returns: "+p.ReturnNote)
	}

	summary := "No extra details available."
	if len(parts) > 0 {
		summary = strings.Join(parts, "; ")
	}
	return fmt.Sprintf("%s — %s", name, summary)
}

func formatOpenOrdersMenu(orders []models.Order) string {
	lines := []string{"Here are your current orders:"}
	for i, o := range orders {
		status := strings.ToLower(o.Status)

		var extra []string
		if status == "in_transit" || status == "shipped" {
			if o.ShippingCarrier != "" {
				extra = append(extra, o.ShippingCarrier)
			}
			tracking := o.TrackingNumber
			if tracking == "" {
				tracking = "N/A"
			}
			extra = append(extra, "track "+tracking)
		}
		etaStr := ""
		if o.ETADate != nil {
			etaStr = ", ETA " + o.ETADate.Format("Jan 02")
		}

		extraStr := ""
		if len(extra) > 0 || etaStr != "" {
			extraStr = fmt.Sprintf(" (%s%s)", strings.Join(extra, ", "), etaStr)
		}
		lines = append(lines, fmt.Sprintf("%d) #%s — %s%s", i+1, o.OrderNumber, status, extraStr))
	}
	lines = append(lines, "", "Please select which order you want to track:")
	return strings.Join(lines, "\n")
}

// summarizeOrder builds the human-readable status plus a short item list.
// Only the first three items are spelled out.
func summarizeOrder(order *models.Order, items []models.OrderItem) string {
	status := strings.ToLower(order.Status)
	carrier := order.ShippingCarrier
	if carrier == "" {
		carrier = "the courier"
	}
	tracking := order.TrackingNumber
	if tracking == "" {
		tracking = "N/A"
	}

	var statusLine string
	switch status {
	case "shipped", "in_transit":
		etaPart := ""
		if order.ETADate != nil {
			etaPart = ", ETA " + order.ETADate.Format("Jan 02")
		}
		statusLine = fmt.Sprintf("in transit with %s (tracking: %s%s)", carrier, tracking, etaPart)
	case "processing", "confirmed", "paid":
		statusLine = "being prepared for shipment, you will receive a tracking number once it ships"
	case "cancelled", "canceled":
		statusLine = "cancelled"
	case "returned", "refunded":
		statusLine = status
	default:
		if status == "" {
			status = "processing"
		}
		statusLine = status
	}

	var lines []string
	for i, it := range items {
		if i == 3 {
			break
		}
		qty := it.Qty
		if qty == 0 {
			qty = 1
		}
		name := it.Name
		if name == "" {
			name = "Item"
		}
		skuPart := ""
		if it.SKU != "" {
			skuPart = fmt.Sprintf(" (SKU %s)", it.SKU)
		}
		lines = append(lines, fmt.Sprintf("- %d x %s%s", qty, name, skuPart))
	}
	more := ""
	if len(items) > 3 {
		more = fmt.Sprintf("\n... and %d more item(s).", len(items)-3)
	}

	header := fmt.Sprintf("Order #%s is %s.", order.OrderNumber, statusLine)
	return header + "\n\nItems:\n" + strings.Join(lines, "\n") + more
}

// parseFeedbackChoice maps the numeric or word reply of the feedback menu to
// a rating and category.
func parseFeedbackChoice(input string) (int, string, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "1", "excellent", "great":
		return 1, "excellent", true
	case "2", "average", "okay", "ok":
		return 2, "average", true
	case "3", "poor", "bad":
		return 3, "poor", true
	case "4", "others", "other":
		return 4, "others", true
	}
	return 0, "", false
}
