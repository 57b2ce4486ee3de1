package printclient

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"math"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"go.uber.org/zap"

	"print3d-service/internal/dto"
	"print3d-service/internal/i18n"
	"print3d-service/pkg/constants"
	"print3d-service/pkg/customvalidator"
	"print3d-service/pkg/utils"
)

// Причины в ValidationError.Fields.
const (
	ReasonRequired  = "required"
	ReasonInvalid   = "invalid"
	ReasonRange     = "range"
	ReasonExtension = "extension"
)

const (
	maxColorLength       = 64
	maxPhoneLength       = 32
	maxDescriptionLength = 5000
)

// OrderDraft - заявка, ещё не отправленная на сервер.
// Для физлица введённые реквизиты компании сохраняются в черновике, но не отправляются.
type OrderDraft struct {
	Length       float64
	Width        float64
	Height       float64
	Plastic      string
	Color        string
	Infill       int
	Quantity     int
	CustomerType string
	CompanyName  string
	INN          string
	Email        string
	Phone        string
	Description  string
}

func (d OrderDraft) IsLegal() bool { return d.CustomerType == constants.CustomerLegal }

type Attachment struct {
	FileName string
	Base64   string
	Size     int64
}

// FileInput - файл, выбранный в форме.
type FileInput struct {
	Name   string
	Reader io.Reader
}

// Feedback - итог отправки формы для показа пользователю.
type Feedback struct {
	Success     bool
	Message     string
	OrderNumber string
	Email       string
	// ClearForm выставляется только при успехе: после ошибки введённые значения остаются.
	ClearForm bool
	Err       error
}

type OrderForm struct {
	client   *Client
	inFlight atomic.Bool
}

func NewOrderForm(client *Client) *OrderForm {
	return &OrderForm{client: client}
}

// CollectFormValues читает поля формы и собирает все ошибки сразу.
func CollectFormValues(values url.Values) (OrderDraft, error) {
	fields := make(map[string]string)
	get := func(name string) string { return strings.TrimSpace(values.Get(name)) }

	draft := OrderDraft{
		Plastic:      strings.ToLower(get("plastic")),
		Color:        get("color"),
		CustomerType: get("customerType"),
		CompanyName:  get("companyName"),
		INN:          get("inn"),
		Email:        get("email"),
		Phone:        get("phone"),
		Description:  get("description"),
	}

	draft.Length = parseDimension(get("length"), "length", fields)
	draft.Width = parseDimension(get("width"), "width", fields)
	draft.Height = parseDimension(get("height"), "height", fields)
	draft.Infill = parseIntInRange(get("infill"), "infill", 10, 100, fields)
	draft.Quantity = parseIntInRange(get("quantity"), "quantity", 1, constants.MaxQuantity, fields)

	switch {
	case draft.Plastic == "":
		fields["plastic"] = ReasonRequired
	case !slices.Contains(constants.Plastics, draft.Plastic):
		fields["plastic"] = ReasonInvalid
	}

	switch {
	case draft.Color == "":
		fields["color"] = ReasonRequired
	case utf8.RuneCountInString(draft.Color) > maxColorLength:
		fields["color"] = ReasonRange
	}

	if _, ok := constants.CustomerTypeLabels[draft.CustomerType]; !ok {
		if draft.CustomerType == "" {
			fields["customerType"] = ReasonRequired
		} else {
			fields["customerType"] = ReasonInvalid
		}
	}

	switch {
	case draft.Email == "":
		fields["email"] = ReasonRequired
	case !customvalidator.IsEmail(draft.Email):
		fields["email"] = ReasonInvalid
	}

	if draft.IsLegal() {
		if draft.CompanyName == "" {
			fields["companyName"] = ReasonRequired
		}
		switch {
		case draft.INN == "":
			fields["inn"] = ReasonRequired
		case !customvalidator.IsINN(draft.INN):
			fields["inn"] = ReasonInvalid
		}
	}

	if utf8.RuneCountInString(draft.Phone) > maxPhoneLength {
		fields["phone"] = ReasonRange
	}
	if utf8.RuneCountInString(draft.Description) > maxDescriptionLength {
		fields["description"] = ReasonRange
	}

	if len(fields) > 0 {
		return draft, &ValidationError{Fields: fields}
	}
	return draft, nil
}

func parseDimension(raw, name string, fields map[string]string) float64 {
	if raw == "" {
		fields[name] = ReasonRequired
		return 0
	}
	v, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		fields[name] = ReasonInvalid
		return 0
	}
	if v < constants.MinDimensionMM || v > constants.MaxDimensionMM {
		fields[name] = ReasonRange
	}
	return v
}

func parseIntInRange(raw, name string, minValue, maxValue int, fields map[string]string) int {
	if raw == "" {
		fields[name] = ReasonRequired
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		fields[name] = ReasonInvalid
		return 0
	}
	if v < minValue || v > maxValue {
		fields[name] = ReasonRange
	}
	return v
}

// EncodeAttachment читает файл не дальше лимита плюс один байт и кодирует его в base64.
// Превышение лимита возвращает *FileTooLargeError до любого сетевого вызова.
func (f *OrderForm) EncodeAttachment(name string, r io.Reader) (*Attachment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Fields: map[string]string{"fileName": ReasonRequired}}
	}
	if err := utils.ValidateExtension(name, constants.UploadContextOrderAttachment.String()); err != nil {
		return nil, &ValidationError{Fields: map[string]string{"fileName": ReasonExtension}}
	}

	limit := f.client.maxAttach
	raw, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > limit {
		return nil, &FileTooLargeError{Size: int64(len(raw)), Limit: limit}
	}

	return &Attachment{
		FileName: name,
		Base64:   base64.StdEncoding.EncodeToString(raw),
		Size:     int64(len(raw)),
	}, nil
}

func (d OrderDraft) payload(att *Attachment) dto.CreateOrderDTO {
	p := dto.CreateOrderDTO{
		Length:       d.Length,
		Width:        d.Width,
		Height:       d.Height,
		Plastic:      d.Plastic,
		Color:        d.Color,
		Infill:       d.Infill,
		Quantity:     d.Quantity,
		CustomerType: d.CustomerType,
		Email:        d.Email,
		Phone:        d.Phone,
		Description:  d.Description,
	}
	if d.IsLegal() {
		p.CompanyName = d.CompanyName
		p.INN = d.INN
	}
	if att != nil {
		p.FileName = att.FileName
		p.FileBase64 = att.Base64
	}
	return p
}

// Submit отправляет заявку одним POST. Пока предыдущая отправка не завершилась,
// повторная сразу возвращает ErrSubmitInProgress без запроса. Повторов нет.
func (f *OrderForm) Submit(ctx context.Context, draft OrderDraft, att *Attachment) (*dto.OrderConfirmationDTO, error) {
	if !f.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmitInProgress
	}
	defer f.inFlight.Store(false)

	ctx, cancel := context.WithTimeout(ctx, f.client.submitTimeout)
	defer cancel()

	var res dto.OrderConfirmationDTO
	if err := f.client.doJSON(ctx, http.MethodPost, "/api/orders", "", draft.payload(att), &res); err != nil {
		return nil, err
	}
	if !res.Success || res.OrderNumber == "" {
		return nil, &ServerError{StatusCode: http.StatusOK, Message: "сервер не подтвердил заявку"}
	}
	if res.Email == "" {
		res.Email = draft.Email
	}
	return &res, nil
}

// SubmitForm - вся отправка формы: проверка полей, кодирование файла, отправка и сообщение пользователю.
func (f *OrderForm) SubmitForm(ctx context.Context, values url.Values, file *FileInput) Feedback {
	draft, err := CollectFormValues(values)
	if err != nil {
		return f.failure(err, "")
	}

	var att *Attachment
	if file != nil && file.Reader != nil {
		att, err = f.EncodeAttachment(file.Name, file.Reader)
		if err != nil {
			return f.failure(err, file.Name)
		}
	}

	res, err := f.Submit(ctx, draft, att)
	if err != nil {
		return f.failure(err, "")
	}

	f.client.logger.Info("Заявка отправлена", zap.String("orderNumber", res.OrderNumber))
	return Feedback{
		Success:     true,
		Message:     f.client.T(i18n.KeyFeedbackSuccess, res.OrderNumber, res.Email),
		OrderNumber: res.OrderNumber,
		Email:       res.Email,
		ClearForm:   true,
	}
}

func (f *OrderForm) failure(err error, fileName string) Feedback {
	c := f.client
	fb := Feedback{Err: err}

	var validationErr *ValidationError
	var tooLarge *FileTooLargeError
	var serverErr *ServerError
	switch {
	case errors.As(err, &validationErr):
		fb.Message = c.T(i18n.KeyFeedbackValidation, strings.Join(validationErr.FieldNames(), ", "))
	case errors.As(err, &tooLarge):
		fb.Message = c.T(i18n.KeyFeedbackFileTooLarge, fileName, tooLarge.LimitMB(), c.contactEmail)
	case errors.Is(err, ErrSubmitInProgress):
		fb.Message = c.T(i18n.KeyFeedbackInProgress)
	case errors.As(err, &serverErr) && serverErr.RateLimited():
		fb.Message = c.T(i18n.KeyFeedbackRateLimited)
	case errors.As(err, &serverErr):
		fb.Message = c.T(i18n.KeyFeedbackServer, serverErr.StatusCode)
	default:
		fb.Message = c.T(i18n.KeyFeedbackNetwork)
	}
	return fb
}
