package utils

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/Kariqs/agent-orders-api/models"
	"github.com/gocarina/gocsv"
)

// OrderExportRow is one line item of one order, flattened for spreadsheets.
type OrderExportRow struct {
	OrderNumber       uint    `csv:"orderNumber"`
	CreatedAt         string  `csv:"createdAt"`
	AgentName         string  `csv:"agentName"`
	MagazinName       string  `csv:"magazinName"`
	CUI               string  `csv:"cui"`
	Address           string  `csv:"address"`
	ResponsiblePerson string  `csv:"responsiblePerson"`
	Product           string  `csv:"product"`
	Boxes             int     `csv:"boxes"`
	UnitsPerBox       int     `csv:"unitsPerBox"`
	Quantity          int     `csv:"quantity"`
	Units             int     `csv:"units"`
	UnitPrice         float64 `csv:"unitPrice"`
	LineTotal         float64 `csv:"lineTotal"`
	OrderTotal        float64 `csv:"orderTotal"`
}

var exportHeaders = []string{
	"orderNumber", "createdAt", "agentName", "magazinName", "cui", "address", "responsiblePerson",
	"product", "boxes", "unitsPerBox", "quantity", "units", "unitPrice", "lineTotal", "orderTotal",
}

func OrderExportRows(orders []models.Order, loc *time.Location) []OrderExportRow {
	var rows []OrderExportRow
	for _, o := range orders {
		for _, item := range o.Items {
			rows = append(rows, OrderExportRow{
				OrderNumber:       o.OrderNumber,
				CreatedAt:         o.CreatedAt.In(loc).Format("2006-01-02 15:04"),
				AgentName:         o.AgentName,
				MagazinName:       o.MagazinName,
				CUI:               o.CUI,
				Address:           o.Address,
				ResponsiblePerson: o.ResponsiblePerson,
				Product:           item.Name,
				Boxes:             item.Boxes,
				UnitsPerBox:       item.UnitsPerBox,
				Quantity:          item.Quantity,
				Units:             item.Units,
				UnitPrice:         models.EffectivePrice(item.Price, item.CustomPrice),
				LineTotal:         item.LineTotal,
				OrderTotal:        o.Total,
			})
		}
	}
	return rows
}

func WriteOrdersCSV(w io.Writer, rows []OrderExportRow) error {
	if len(rows) == 0 {
		// gocsv writes nothing for an empty slice; keep the header row.
		_, err := fmt.Fprintln(w, strings.Join(exportHeaders, ","))
		return err
	}
	return gocsv.Marshal(rows, w)
}

// columnName converts a zero-based column index into spreadsheet letters (0 -> A, 26 -> AA).
func columnName(index int) string {
	name := ""
	for index >= 0 {
		name = string(rune('A'+index%26)) + name
		index = index/26 - 1
	}
	return name
}

func WriteOrdersXLSX(w io.Writer, rows []OrderExportRow) error {
	const sheet = "Sheet1"
	f := excelize.NewFile()

	for col, h := range exportHeaders {
		f.SetCellValue(sheet, fmt.Sprintf("%s1", columnName(col)), h)
	}
	for i, r := range rows {
		line := i + 2
		values := []any{
			r.OrderNumber, r.CreatedAt, r.AgentName, r.MagazinName, r.CUI, r.Address, r.ResponsiblePerson,
			r.Product, r.Boxes, r.UnitsPerBox, r.Quantity, r.Units, r.UnitPrice, r.LineTotal, r.OrderTotal,
		}
		for col, v := range values {
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", columnName(col), line), v)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}
