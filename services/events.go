package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Kariqs/agent-orders-api/models"
	"github.com/Kariqs/agent-orders-api/utils"
	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"
)

const TopicOrderCreated = "order:created"

// Bus carries domain events. Handlers run asynchronously so checkout never waits on
// mail or webhook delivery.
var Bus = EventBus.New()

type MailSender interface {
	Send(to []string, subject, htmlBody string, attachments ...utils.Attachment) error
}

type WebhookPoster interface {
	Post(ctx context.Context, payload any) error
}

type DocumentRenderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// OrderNotifier reacts to created orders. Any dependency may be nil.
type OrderNotifier struct {
	Mailer   MailSender
	To       []string
	Webhook  WebhookPoster
	Renderer DocumentRenderer
	Location *time.Location
	Timeout  time.Duration
}

// OrderWebhookPayload is the body posted to ORDER_WEBHOOK_URL.
type OrderWebhookPayload struct {
	Event       string    `json:"event"`
	ID          uint      `json:"id"`
	OrderNumber uint      `json:"orderNumber"`
	AgentName   string    `json:"agentName"`
	MagazinName string    `json:"magazinName"`
	CUI         string    `json:"cui"`
	Total       float64   `json:"total"`
	TotalUnits  int       `json:"totalUnits"`
	TotalBoxes  int       `json:"totalBoxes"`
	Items       int       `json:"items"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewOrderWebhookPayload(order models.Order) OrderWebhookPayload {
	return OrderWebhookPayload{
		Event:       TopicOrderCreated,
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		AgentName:   order.AgentName,
		MagazinName: order.MagazinName,
		CUI:         order.CUI,
		Total:       order.Total,
		TotalUnits:  order.TotalUnits,
		TotalBoxes:  order.TotalBoxes,
		Items:       len(order.Items),
		CreatedAt:   order.CreatedAt,
	}
}

// Subscribe registers the notifier on bus.
func (n *OrderNotifier) Subscribe(bus EventBus.Bus) error {
	return bus.SubscribeAsync(TopicOrderCreated, n.Handle, false)
}

func (n *OrderNotifier) Handle(order models.Order) {
	timeout := n.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if n.Webhook != nil {
		if err := n.Webhook.Post(ctx, NewOrderWebhookPayload(order)); err != nil {
			zap.S().Errorf("Order %d webhook failed: %v", order.OrderNumber, err)
		}
	}
	if n.Mailer != nil && len(n.To) > 0 {
		if err := n.sendMail(ctx, order); err != nil {
			zap.S().Errorf("Order %d notification failed: %v", order.OrderNumber, err)
		}
	}
}

func (n *OrderNotifier) sendMail(ctx context.Context, order models.Order) error {
	body, err := utils.RenderEmail("notification.html", utils.EmailData{
		Heading: fmt.Sprintf("Comanda nr. %d", order.OrderNumber),
		Message: "A fost plasata o comanda noua.",
		Rows: [][2]string{
			{"Agent", order.AgentName},
			{"Magazin", order.MagazinName},
			{"CUI", order.CUI},
			{"Adresa", order.Address},
			{"Persoana responsabila", order.ResponsiblePerson},
			{"Produse", strconv.Itoa(len(order.Items))},
			{"Total", utils.FormatRON(order.Total)},
		},
	})
	if err != nil {
		return err
	}

	var attachments []utils.Attachment
	if n.Renderer != nil {
		pdf, err := OrderPDF(ctx, n.Renderer, order, n.Location)
		switch {
		case err == nil:
			attachments = append(attachments, utils.Attachment{
				Name: fmt.Sprintf("comanda-%d.pdf", order.OrderNumber),
				Data: pdf,
			})
		case errors.Is(err, utils.ErrRendererUnavailable):
			zap.S().Debug("PDF renderer unavailable, sending notification without attachment")
		default:
			zap.S().Warnf("Order %d PDF failed: %v", order.OrderNumber, err)
		}
	}

	subject := fmt.Sprintf("Comanda noua #%d - %s", order.OrderNumber, order.MagazinName)
	return n.Mailer.Send(n.To, subject, body, attachments...)
}

// OrderPDF renders the printable order sheet.
func OrderPDF(ctx context.Context, renderer DocumentRenderer, order models.Order, loc *time.Location) ([]byte, error) {
	html, err := utils.RenderOrderHTML(order, loc)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, html)
}

// CatalogPDF renders the product catalog grouped by category.
func CatalogPDF(ctx context.Context, renderer DocumentRenderer, products []models.Product) ([]byte, error) {
	html, err := utils.RenderCatalogHTML(products, Now())
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, html)
}

// PublishOrderCreated hands a stored order to the subscribers.
func PublishOrderCreated(order models.Order) {
	Bus.Publish(TopicOrderCreated, order)
}
