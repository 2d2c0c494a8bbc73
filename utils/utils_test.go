package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Kariqs/agent-orders-api/models"
	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.Black)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestEncodeBarcode(t *testing.T) {
	for _, code := range []string{"5901234123457", "96385074", "ABC-123", "12345"} {
		data, err := EncodeBarcode(code, 200, 80)
		require.NoError(t, err, code)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err, code)
		assert.Equal(t, 80, img.Bounds().Dy(), code)
		assert.GreaterOrEqual(t, img.Bounds().Dx(), 200, code)
	}

	_, err := EncodeBarcode("  ", 200, 80)
	assert.Error(t, err)
}

func TestDayRange(t *testing.T) {
	start, end, err := DayRange("2024-03-05", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), end)

	_, _, err = DayRange("not a date", time.UTC)
	assert.Error(t, err)
}

func TestSpanRangeIncludesEndDay(t *testing.T) {
	start, end, err := SpanRange("2024-03-01", "2024-03-31", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), end)

	_, _, err = SpanRange("2024-03-31", "2024-03-01", time.UTC)
	assert.Error(t, err)
}

func TestParseDayUsesLocation(t *testing.T) {
	loc := time.FixedZone("EET", 2*3600)
	day, err := ParseDay("2024-07-15", loc)
	require.NoError(t, err)
	assert.Equal(t, loc, day.Location())
	assert.Equal(t, 15, day.Day())
	assert.Zero(t, day.Hour())
}

func exportOrders() []models.Order {
	custom := 9.0
	return []models.Order{{
		OrderNumber: 4,
		AgentName:   "Ion",
		MagazinName: "Mega, Centru",
		CUI:         "RO123",
		Address:     "Str. Lunga 1",
		Total:       129,
		CreatedAt:   time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{Name: "Apa", Price: 2.5, Boxes: 2, UnitsPerBox: 6, Quantity: 0, Units: 12, LineTotal: 30},
			{Name: "Suc", Price: 10, CustomPrice: &custom, Boxes: 1, UnitsPerBox: 11, Units: 11, LineTotal: 99},
		},
	}}
}

func TestOrderExportCSV(t *testing.T) {
	rows := OrderExportRows(exportOrders(), time.UTC)
	require.Len(t, rows, 2)
	assert.Equal(t, 9.0, rows[1].UnitPrice)
	assert.Equal(t, "2024-03-05 10:30", rows[0].CreatedAt)

	var buf bytes.Buffer
	require.NoError(t, WriteOrdersCSV(&buf, rows))

	var decoded []OrderExportRow
	require.NoError(t, gocsv.UnmarshalBytes(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Mega, Centru", decoded[0].MagazinName)
	assert.Equal(t, 129.0, decoded[1].OrderTotal)
}

func TestOrderExportCSVEmptyKeepsHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersCSV(&buf, nil))
	assert.Equal(t, strings.Join(exportHeaders, ",")+"\n", buf.String())
}

func TestOrderExportXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersXLSX(&buf, OrderExportRows(exportOrders(), time.UTC)))
	// xlsx files are zip archives
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")))
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "A", columnName(0))
	assert.Equal(t, "Z", columnName(25))
	assert.Equal(t, "AA", columnName(26))
	assert.Equal(t, "AO", columnName(40))
}

func TestNormalizeSignature(t *testing.T) {
	raw := base64.StdEncoding.EncodeToString(testPNG(t, 1200, 400))

	for _, input := range []string{raw, "data:image/png;base64," + raw} {
		out, err := NormalizeSignature(input)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(out, "data:image/png;base64,"))

		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(out, "data:image/png;base64,"))
		require.NoError(t, err)
		img, err := png.Decode(bytes.NewReader(decoded))
		require.NoError(t, err)
		assert.LessOrEqual(t, img.Bounds().Dx(), 600)
		assert.LessOrEqual(t, img.Bounds().Dy(), 300)
	}
}

func TestNormalizeSignatureRejectsGarbage(t *testing.T) {
	for _, input := range []string{"data:text/plain;base64,aGVsbG8=", "%%%", base64.StdEncoding.EncodeToString([]byte("hello"))} {
		_, err := NormalizeSignature(input)
		assert.ErrorIs(t, err, ErrInvalidImage, input)
	}
}

func TestOptimizeProductImage(t *testing.T) {
	out, err := OptimizeProductImage(testPNG(t, 1600, 1000))
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 500, cfg.Height)

	_, err = OptimizeProductImage([]byte("not an image"))
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestLocalImageStore(t *testing.T) {
	dir := t.TempDir()
	store := &LocalImageStore{Dir: filepath.Join(dir, "images")}

	ref, err := store.Save(context.Background(), "../escape.jpg", []byte("data"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/images/escape.jpg", ref)

	saved, err := os.ReadFile(filepath.Join(dir, "images", "escape.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(saved))
}

func TestRenderOrderHTML(t *testing.T) {
	order := exportOrders()[0]
	order.ResponsiblePerson = "Maria"
	order.Signature = "data:image/png;base64," + base64.StdEncoding.EncodeToString(testPNG(t, 10, 10))

	html, err := RenderOrderHTML(order, time.UTC)
	require.NoError(t, err)
	assert.Contains(t, html, "Mega, Centru")
	assert.Contains(t, html, "129.00 RON")
	assert.Contains(t, html, `src="data:image/png;base64,`)
	assert.Contains(t, html, "05.03.2024 10:30")
}

func TestRenderOrderHTMLUsesExportLocation(t *testing.T) {
	loc := time.FixedZone("EET", 2*60*60)
	order := exportOrders()[0]

	html, err := RenderOrderHTML(order, loc)
	require.NoError(t, err)
	assert.Contains(t, html, "05.03.2024 12:30")
	assert.NotContains(t, html, "05.03.2024 10:30")

	rows := OrderExportRows([]models.Order{order}, loc)
	require.NotEmpty(t, rows)
	assert.Equal(t, "2024-03-05 12:30", rows[0].CreatedAt)
}

func TestRenderCatalogHTML(t *testing.T) {
	code := "5901234123457"
	products := []models.Product{
		{Name: "Suc", Category: "Bauturi", Price: 4, UnitsPerBox: 12, Stoc: models.StockIn, Barcode: &code},
		{Name: "Apa", Category: "Bauturi", Price: 2.5, UnitsPerBox: 6, Stoc: models.StockOut},
		{Name: "Biscuiti", Category: "Dulciuri", Price: 3, UnitsPerBox: 24, Stoc: models.StockIn},
	}

	html, err := RenderCatalogHTML(products, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Less(t, strings.Index(html, "Bauturi"), strings.Index(html, "Dulciuri"))
	assert.Less(t, strings.Index(html, ">Apa<"), strings.Index(html, ">Suc<"))
	assert.Contains(t, html, "data:image/png;base64,")
}

func TestRenderEmail(t *testing.T) {
	body, err := RenderEmail("notification.html", EmailData{
		Heading: "Comanda nr. 1",
		Message: "Test",
		Rows:    [][2]string{{"Magazin", "Mega <Centru>"}},
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Comanda nr. 1")
	assert.Contains(t, body, "Mega &lt;Centru&gt;")
}

func TestWebhookClientPost(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewWebhookClient(server.URL)
	require.NoError(t, client.Post(context.Background(), map[string]any{"orderNumber": 3}))
	assert.Equal(t, float64(3), got["orderNumber"])
}

func TestWebhookClientFailsOnErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	err := NewWebhookClient(server.URL).Post(context.Background(), map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)
	assert.NoError(t, ComparePasswords(hash, "secret"))
	assert.Error(t, ComparePasswords(hash, "wrong"))
}

func TestPDFRendererUnavailable(t *testing.T) {
	r := NewPDFRenderer("")
	if r.Available() {
		t.Skip("a Chrome binary is installed")
	}
	_, err := r.Render(context.Background(), "<html></html>")
	assert.ErrorIs(t, err, ErrRendererUnavailable)
}
