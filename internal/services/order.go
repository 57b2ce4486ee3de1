package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"print3d-service/config"
	"print3d-service/internal/dto"
	"print3d-service/internal/entities"
	"print3d-service/internal/events"
	"print3d-service/internal/export"
	"print3d-service/internal/repositories"
	"print3d-service/pkg/constants"
	apperrors "print3d-service/pkg/errors"
	"print3d-service/pkg/eventbus"
	"print3d-service/pkg/filestorage"
	"print3d-service/pkg/types"
	"print3d-service/pkg/utils"
)

// EventPublisher - часть шины событий, нужная сервисам.
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, in dto.CreateOrderDTO) (*dto.OrderConfirmationDTO, error)
	GetOrders(ctx context.Context, filter types.OrderFilter) (*dto.OrdersListDTO, error)
	UpdateStatus(ctx context.Context, in dto.UpdateOrderStatusDTO) (*dto.OrderStatusUpdatedDTO, error)
	DeleteOrder(ctx context.Context, id uint64) error
	ExportOrders(ctx context.Context, filter types.OrderFilter) ([]byte, string, error)
	Estimate(ctx context.Context, in dto.EstimateRequestDTO) (*dto.EstimateDTO, error)
}

type OrderService struct {
	repo        repositories.OrderRepositoryInterface
	fileStorage filestorage.FileStorageInterface
	bus         EventPublisher
	validate    *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

func NewOrderService(
	repo repositories.OrderRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	bus EventPublisher,
	validate *validator.Validate,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		repo:        repo,
		fileStorage: fileStorage,
		bus:         bus,
		validate:    validate,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateOrder повторно проверяет черновик на сервере, сохраняет вложение и заявку,
// после чего публикует OrderCreatedEvent.
func (s *OrderService) CreateOrder(ctx context.Context, in dto.CreateOrderDTO) (*dto.OrderConfirmationDTO, error) {
	in = normalizeOrderDraft(in)
	if err := s.validate.Struct(in); err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "Ошибка валидации заявки", err, nil)
	}

	order := &entities.Order{
		OrderNumber:  s.newOrderNumber(),
		CustomerType: in.CustomerType,
		CompanyName:  in.CompanyName,
		INN:          in.INN,
		Email:        in.Email,
		Phone:        in.Phone,
		Length:       in.Length,
		Width:        in.Width,
		Height:       in.Height,
		PlasticType:  in.Plastic,
		Color:        in.Color,
		Infill:       in.Infill,
		Quantity:     in.Quantity,
		Description:  in.Description,
		Status:       constants.StatusNew,
	}

	if in.FileBase64 != "" {
		fileURL, err := s.saveAttachment(in.FileName, in.FileBase64)
		if err != nil {
			return nil, err
		}
		order.FileURL = fileURL
		order.FileName = in.FileName
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		if order.FileURL != "" {
			if delErr := s.fileStorage.Delete(order.FileURL); delErr != nil {
				s.logger.Warn("Не удалось удалить файл несохранённой заявки", zap.String("file", order.FileURL), zap.Error(delErr))
			}
		}
		s.logger.Error("Ошибка сохранения заявки", zap.String("email", order.Email), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Создана заявка",
		zap.Uint64("orderID", order.ID),
		zap.String("orderNumber", order.OrderNumber),
		zap.String("email", order.Email),
		zap.Bool("withFile", order.FileURL != ""),
	)
	s.bus.Publish(ctx, events.OrderCreatedEvent{Order: *order})

	return &dto.OrderConfirmationDTO{Success: true, OrderNumber: order.OrderNumber, Email: order.Email}, nil
}

// normalizeOrderDraft обрезает пробелы и сбрасывает реквизиты, неприменимые к физ. лицу.
func normalizeOrderDraft(in dto.CreateOrderDTO) dto.CreateOrderDTO {
	in.Plastic = strings.ToLower(strings.TrimSpace(in.Plastic))
	in.Color = strings.TrimSpace(in.Color)
	in.CustomerType = strings.TrimSpace(in.CustomerType)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.INN = strings.TrimSpace(in.INN)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Description = strings.TrimSpace(in.Description)
	in.FileName = strings.TrimSpace(in.FileName)
	if in.CustomerType == constants.CustomerIndividual {
		in.CompanyName = ""
		in.INN = ""
	}
	if in.FileBase64 == "" {
		in.FileName = ""
	}
	return in
}

func (s *OrderService) saveAttachment(fileName, encoded string) (string, error) {
	// Браузерный FileReader отдаёт data URL: "data:...;base64,<payload>".
	if strings.HasPrefix(encoded, "data:") {
		if i := strings.Index(encoded, ","); i >= 0 {
			encoded = encoded[i+1:]
		}
	}

	ctxName := constants.UploadContextOrderAttachment.String()
	limit := config.UploadContexts[ctxName].MaxSizeBytes
	if int64(base64.StdEncoding.DecodedLen(len(encoded))) > limit+2 {
		return "", fmt.Errorf("%w: лимит %d MB", apperrors.ErrFileTooLarge, limit/(1024*1024))
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidBase64, err)
	}

	reader := bytes.NewReader(data)
	if err := utils.ValidateFile(fileName, int64(len(data)), reader, ctxName); err != nil {
		return "", err
	}

	relativePath, err := s.fileStorage.Save(reader, fileName, config.UploadContexts[ctxName].PathPrefix)
	if err != nil {
		s.logger.Error("Не удалось сохранить вложение заявки", zap.String("fileName", fileName), zap.Error(err))
		return "", apperrors.ErrInternalServer
	}
	return filestorage.URLPrefix + relativePath, nil
}

// newOrderNumber формирует номер вида 3DP-20250131-1A2B3C4D.
func (s *OrderService) newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "3DP-" + s.now().Format("20060102") + "-" + suffix
}

func (s *OrderService) GetOrders(ctx context.Context, filter types.OrderFilter) (*dto.OrdersListDTO, error) {
	orders, err := s.repo.GetOrders(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка получения списка заявок", zap.Error(err))
		return nil, err
	}

	list := &dto.OrdersListDTO{Orders: make([]dto.OrderDTO, 0, len(orders))}
	for _, o := range orders {
		list.Orders = append(list.Orders, dto.NewOrderDTO(o))
	}
	return list, nil
}

// UpdateStatus ставит любой статус из любого: граф переходов не навязывается.
func (s *OrderService) UpdateStatus(ctx context.Context, in dto.UpdateOrderStatusDTO) (*dto.OrderStatusUpdatedDTO, error) {
	if !constants.IsValidStatus(in.Status) {
		return nil, apperrors.ErrInvalidStatus
	}

	order, err := s.repo.UpdateStatus(ctx, in.OrderID, in.Status)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Статус заявки изменён",
		zap.Uint64("orderID", order.ID),
		zap.String("status", order.Status),
	)
	return &dto.OrderStatusUpdatedDTO{Success: true, OrderID: order.ID, Status: order.Status}, nil
}

// DeleteOrder удаляет заявку навсегда. Вложение удаляется по возможности.
func (s *OrderService) DeleteOrder(ctx context.Context, id uint64) error {
	order, err := s.repo.DeleteOrder(ctx, id)
	if err != nil {
		return err
	}

	if order.FileURL != "" {
		if err := s.fileStorage.Delete(order.FileURL); err != nil {
			s.logger.Warn("Не удалось удалить файл заявки", zap.Uint64("orderID", id), zap.String("file", order.FileURL), zap.Error(err))
		}
	}
	s.logger.Info("Заявка удалена", zap.Uint64("orderID", id), zap.String("orderNumber", order.OrderNumber))
	return nil
}

// ExportOrders возвращает xlsx с отфильтрованными заявками и имя файла для скачивания.
func (s *OrderService) ExportOrders(ctx context.Context, filter types.OrderFilter) ([]byte, string, error) {
	list, err := s.GetOrders(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := export.WriteOrdersSpreadsheet(&buf, list.Orders); err != nil {
		s.logger.Error("Ошибка формирования Excel", zap.Error(err))
		return nil, "", apperrors.ErrInternalServer
	}
	return buf.Bytes(), export.SpreadsheetFileName(s.now()), nil
}
