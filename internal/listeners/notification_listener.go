package listeners

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"

	"print3d-service/internal/entities"
	"print3d-service/internal/events"
	"print3d-service/pkg/constants"
	"print3d-service/pkg/eventbus"
	"print3d-service/pkg/mailer"
)

// NotificationListener отправляет письма о новой заявке студии и заказчику.
type NotificationListener struct {
	mailer        mailer.Mailer
	notifyEmail   string
	publicBaseURL string
	logger        *zap.Logger
}

func NewNotificationListener(m mailer.Mailer, notifyEmail, publicBaseURL string, logger *zap.Logger) *NotificationListener {
	return &NotificationListener{
		mailer:        m,
		notifyEmail:   notifyEmail,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.OrderCreated, l.handleOrderCreated)
	l.logger.Info("NotificationListener подписан на событие", zap.String("event", events.OrderCreated))
}

// handleOrderCreated шлёт оба письма независимо: сбой одного не отменяет другое.
func (l *NotificationListener) handleOrderCreated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.OrderCreatedEvent)
	if !ok {
		return nil
	}
	order := e.Order

	var errs []error
	if l.notifyEmail != "" {
		if err := l.mailer.Send(ctx, l.studioMessage(order)); err != nil {
			errs = append(errs, fmt.Errorf("письмо студии: %w", err))
		}
	}
	if err := l.mailer.Send(ctx, l.customerMessage(order)); err != nil {
		errs = append(errs, fmt.Errorf("письмо заказчику: %w", err))
	}

	if len(errs) == 0 {
		l.logger.Info("Уведомления о заявке отправлены",
			zap.String("orderNumber", order.OrderNumber),
			zap.String("email", order.Email),
		)
	}
	return errors.Join(errs...)
}

func (l *NotificationListener) studioMessage(o entities.Order) mailer.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Новая заявка %s</h2>", html.EscapeString(o.OrderNumber))
	b.WriteString("<table>")
	row := func(label, value string) {
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(&b, "<tr><td><b>%s</b></td><td>%s</td></tr>", label, html.EscapeString(value))
	}
	row("Тип клиента", constants.CustomerTypeLabels[o.CustomerType])
	if o.CustomerType == constants.CustomerLegal {
		row("Компания", o.CompanyName)
		row("ИНН", o.INN)
	}
	row("Email", o.Email)
	row("Телефон", o.Phone)
	row("Размеры (мм)", fmt.Sprintf("%g × %g × %g", o.Length, o.Width, o.Height))
	row("Материал", strings.ToUpper(o.PlasticType))
	row("Цвет", o.Color)
	row("Заполнение", fmt.Sprintf("%d%%", o.Infill))
	row("Количество", fmt.Sprintf("%d", o.Quantity))
	row("Описание", o.Description)
	if o.FileURL != "" {
		row("Файл", o.FileName+" ("+l.publicBaseURL+o.FileURL+")")
	}
	b.WriteString("</table>")

	return mailer.Message{
		To:       []string{l.notifyEmail},
		Subject:  "Новая заявка " + o.OrderNumber,
		HTMLBody: b.String(),
	}
}

func (l *NotificationListener) customerMessage(o entities.Order) mailer.Message {
	body := fmt.Sprintf(
		"<p>Здравствуйте!</p><p>Ваша заявка <b>%s</b> принята. Мы рассчитаем стоимость и свяжемся с вами в течение рабочего дня.</p>"+
			"<p>Материал: %s, количество: %d.</p>",
		html.EscapeString(o.OrderNumber), html.EscapeString(strings.ToUpper(o.PlasticType)), o.Quantity,
	)
	return mailer.Message{
		To:       []string{o.Email},
		Subject:  "Заявка " + o.OrderNumber + " принята",
		HTMLBody: body,
	}
}
