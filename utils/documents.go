package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/Kariqs/agent-orders-api/models"
)

var documentFuncs = template.FuncMap{
	"money": FormatRON,
	"date": func(t time.Time) string {
		return t.Format("02.01.2006 15:04")
	},
	"effective": func(item models.OrderItem) float64 {
		return models.EffectivePrice(item.Price, item.CustomPrice)
	},
	"inc": func(i int) int { return i + 1 },
}

// FormatRON renders an amount with two decimals and the currency suffix.
func FormatRON(amount float64) string {
	return fmt.Sprintf("%.2f RON", amount)
}

// safeImageURL lets embedded data-URL images through html/template escaping.
func safeImageURL(src string) template.URL {
	if strings.HasPrefix(src, "data:image/") {
		return template.URL(src)
	}
	return ""
}

type orderDocument struct {
	Order     models.Order
	Signature template.URL
}

// RenderOrderHTML renders the printable order sheet with times shown in loc.
func RenderOrderHTML(order models.Order, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.UTC
	}
	order.CreatedAt = order.CreatedAt.In(loc)
	tmpl, err := template.New("order.html").Funcs(documentFuncs).ParseFS(templateFS, "templates/order.html")
	if err != nil {
		return "", fmt.Errorf("template parse error: %w", err)
	}
	var buf bytes.Buffer
	doc := orderDocument{Order: order, Signature: safeImageURL(order.Signature)}
	if err := tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("template execution error: %w", err)
	}
	return buf.String(), nil
}

type catalogEntry struct {
	Product models.Product
	Barcode template.URL
}

type catalogGroup struct {
	Category string
	Entries  []catalogEntry
}

type catalogDocument struct {
	Generated time.Time
	Groups    []catalogGroup
}

// RenderCatalogHTML renders the product catalog grouped by category, with barcode images
// for products that carry a code.
func RenderCatalogHTML(products []models.Product, generated time.Time) (string, error) {
	tmpl, err := template.New("catalog.html").Funcs(documentFuncs).ParseFS(templateFS, "templates/catalog.html")
	if err != nil {
		return "", fmt.Errorf("template parse error: %w", err)
	}

	byCategory := map[string][]catalogEntry{}
	for _, p := range products {
		entry := catalogEntry{Product: p}
		if p.Barcode != nil {
			if png, err := EncodeBarcode(*p.Barcode, 240, 60); err == nil {
				entry.Barcode = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
			}
		}
		byCategory[p.Category] = append(byCategory[p.Category], entry)
	}

	doc := catalogDocument{Generated: generated}
	for category, entries := range byCategory {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Product.Name < entries[j].Product.Name })
		doc.Groups = append(doc.Groups, catalogGroup{Category: category, Entries: entries})
	}
	sort.Slice(doc.Groups, func(i, j int) bool { return doc.Groups[i].Category < doc.Groups[j].Category })

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("template execution error: %w", err)
	}
	return buf.String(), nil
}
