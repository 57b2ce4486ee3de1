package services

import (
	"context"
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"print3d-service/config"
	"print3d-service/internal/dto"
	"print3d-service/internal/events"
	"print3d-service/pkg/customvalidator"
	apperrors "print3d-service/pkg/errors"
	"print3d-service/pkg/types"
)

type orderFixture struct {
	svc     *OrderService
	repo    *fakeOrderRepo
	storage *fakeFileStorage
	bus     *recordingPublisher
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{repo: &fakeOrderRepo{}, storage: newFakeFileStorage(), bus: &recordingPublisher{}}
	f.svc = NewOrderService(f.repo, f.storage, f.bus, customvalidator.New(), zap.NewNop())
	f.svc.now = func() time.Time { return time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC) }
	return f
}

func validDraft() dto.CreateOrderDTO {
	return dto.CreateOrderDTO{
		Length:       100,
		Width:        100,
		Height:       100,
		Plastic:      "pla",
		Color:        "white",
		Infill:       20,
		Quantity:     1,
		CustomerType: "individual",
		Email:        "a@b.com",
	}
}

func validationFields(t *testing.T, err error) []string {
	t.Helper()
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs), "ожидалась ошибка валидации, получено %v", err)
	fields := make([]string, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, e.Field())
	}
	return fields
}

func TestCreateOrder_IndividualWithoutFile(t *testing.T) {
	f := newOrderFixture()

	res, err := f.svc.CreateOrder(context.Background(), validDraft())
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "a@b.com", res.Email)
	assert.Regexp(t, regexp.MustCompile(`^3DP-20250131-[0-9A-F]{8}$`), res.OrderNumber)

	require.Len(t, f.repo.orders, 1)
	saved := f.repo.orders[0]
	assert.Equal(t, "new", saved.Status)
	assert.Empty(t, saved.FileURL)
	assert.Empty(t, f.storage.saved)

	require.Len(t, f.bus.events, 1)
	ev, ok := f.bus.events[0].(events.OrderCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, res.OrderNumber, ev.Order.OrderNumber)
}

func TestCreateOrder_LegalRequiresRequisites(t *testing.T) {
	f := newOrderFixture()
	draft := validDraft()
	draft.CustomerType = "legal"
	draft.CompanyName = "   "

	_, err := f.svc.CreateOrder(context.Background(), draft)
	require.Error(t, err)
	assert.ElementsMatch(t, []string{"CompanyName", "INN"}, validationFields(t, err))
	assert.Empty(t, f.repo.orders)
	assert.Empty(t, f.bus.events)
}

func TestCreateOrder_LegalWithRequisites(t *testing.T) {
	f := newOrderFixture()
	draft := validDraft()
	draft.CustomerType = "legal"
	draft.CompanyName = "ООО Ромашка"
	draft.INN = "7707083893"

	_, err := f.svc.CreateOrder(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "ООО Ромашка", f.repo.orders[0].CompanyName)
}

func TestCreateOrder_IndividualDropsLeftoverRequisites(t *testing.T) {
	f := newOrderFixture()
	draft := validDraft()
	draft.CompanyName = "ООО Ромашка"
	draft.INN = "12"

	_, err := f.svc.CreateOrder(context.Background(), draft)
	require.NoError(t, err)
	assert.Empty(t, f.repo.orders[0].CompanyName)
	assert.Empty(t, f.repo.orders[0].INN)
}

func TestCreateOrder_ServerSideInvariants(t *testing.T) {
	cases := map[string]func(d *dto.CreateOrderDTO){
		"infill below 10":   func(d *dto.CreateOrderDTO) { d.Infill = 5 },
		"infill above 100":  func(d *dto.CreateOrderDTO) { d.Infill = 101 },
		"zero quantity":     func(d *dto.CreateOrderDTO) { d.Quantity = 0 },
		"negative length":   func(d *dto.CreateOrderDTO) { d.Length = -1 },
		"unknown plastic":   func(d *dto.CreateOrderDTO) { d.Plastic = "wood" },
		"bad email":         func(d *dto.CreateOrderDTO) { d.Email = "not-an-email" },
		"missing email":     func(d *dto.CreateOrderDTO) { d.Email = "" },
		"bad customer type": func(d *dto.CreateOrderDTO) { d.CustomerType = "robot" },
		"empty color":       func(d *dto.CreateOrderDTO) { d.Color = " " },
		"file without name": func(d *dto.CreateOrderDTO) { d.FileBase64 = "AAAA" },
		"length below 0.01": func(d *dto.CreateOrderDTO) { d.Length = 0.001 },
		"length too large":  func(d *dto.CreateOrderDTO) { d.Length = 1e12 },
		"quantity too big":  func(d *dto.CreateOrderDTO) { d.Quantity = 3_000_000_000 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := newOrderFixture()
			draft := validDraft()
			mutate(&draft)

			_, err := f.svc.CreateOrder(context.Background(), draft)
			require.Error(t, err)
			var httpErr *apperrors.HttpError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, 400, httpErr.Code)
			assert.Empty(t, f.repo.orders)
		})
	}
}

func TestCreateOrder_CustomColorText(t *testing.T) {
	f := newOrderFixture()
	draft := validDraft()
	draft.Color = "RAL 5015 небесно-синий"

	_, err := f.svc.CreateOrder(context.Background(), draft)
	require.NoError(t, err)
}

func TestCreateOrder_SavesAttachment(t *testing.T) {
	f := newOrderFixture()
	draft := validDraft()
	draft.FileName = "part.STL"
	draft.FileBase64 = "data:model/stl;base64," + base64.StdEncoding.EncodeToString([]byte("solid part"))

	_, err := f.svc.CreateOrder(context.Background(), draft)
	require.NoError(t, err)

	saved := f.repo.orders[0]
	assert.True(t, strings.HasPrefix(saved.FileURL, "/uploads/orders/"))
	assert.Equal(t, "part.STL", saved.FileName)
	require.Len(t, f.storage.saved, 1)
	for _, content := range f.storage.saved {
		assert.Equal(t, "solid part", string(content))
	}
}

func TestCreateOrder_RejectsOversizedAttachment(t *testing.T) {
	f := newOrderFixture()
	draft := validDraft()
	draft.FileName = "big.stl"
	draft.FileBase64 = base64.StdEncoding.EncodeToString(make([]byte, config.MaxOrderAttachmentBytes+1))

	_, err := f.svc.CreateOrder(context.Background(), draft)
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
	assert.Empty(t, f.storage.saved)
	assert.Empty(t, f.repo.orders)
}

func TestCreateOrder_RejectsBadAttachment(t *testing.T) {
	f := newOrderFixture()

	draft := validDraft()
	draft.FileName = "virus.exe"
	draft.FileBase64 = base64.StdEncoding.EncodeToString([]byte("MZ"))
	_, err := f.svc.CreateOrder(context.Background(), draft)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFile)

	draft.FileName = "part.stl"
	draft.FileBase64 = "%%%not-base64%%%"
	_, err = f.svc.CreateOrder(context.Background(), draft)
	assert.ErrorIs(t, err, apperrors.ErrInvalidBase64)
}

func TestCreateOrder_RemovesFileWhenInsertFails(t *testing.T) {
	f := newOrderFixture()
	f.repo.failErr = errors.New("db down")
	draft := validDraft()
	draft.FileName = "part.obj"
	draft.FileBase64 = base64.StdEncoding.EncodeToString([]byte("v 0 0 0"))

	_, err := f.svc.CreateOrder(context.Background(), draft)
	require.Error(t, err)
	require.Len(t, f.storage.deleted, 1)
	assert.Empty(t, f.bus.events)
}

func TestUpdateStatus_AnyTransitionAllowed(t *testing.T) {
	f := newOrderFixture()
	_, err := f.svc.CreateOrder(context.Background(), validDraft())
	require.NoError(t, err)
	id := f.repo.orders[0].ID

	for _, status := range []string{"completed", "new", "cancelled", "processing"} {
		res, err := f.svc.UpdateStatus(context.Background(), dto.UpdateOrderStatusDTO{OrderID: id, Status: status})
		require.NoError(t, err)
		assert.Equal(t, status, res.Status)
	}

	_, err = f.svc.UpdateStatus(context.Background(), dto.UpdateOrderStatusDTO{OrderID: id, Status: "archived"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)

	_, err = f.svc.UpdateStatus(context.Background(), dto.UpdateOrderStatusDTO{OrderID: 404, Status: "new"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteOrder_RemovesAttachment(t *testing.T) {
	f := newOrderFixture()
	draft := validDraft()
	draft.FileName = "part.3mf"
	draft.FileBase64 = base64.StdEncoding.EncodeToString([]byte("PK"))
	_, err := f.svc.CreateOrder(context.Background(), draft)
	require.NoError(t, err)
	order := f.repo.orders[0]

	require.NoError(t, f.svc.DeleteOrder(context.Background(), order.ID))
	assert.Equal(t, []string{order.FileURL}, f.storage.deleted)
	assert.ErrorIs(t, f.svc.DeleteOrder(context.Background(), order.ID), apperrors.ErrNotFound)
}

func TestGetOrders_NewestFirstWithFilter(t *testing.T) {
	f := newOrderFixture()
	for _, email := range []string{"one@shop.ru", "two@mail.ru", "three@SHOP.ru"} {
		d := validDraft()
		d.Email = email
		_, err := f.svc.CreateOrder(context.Background(), d)
		require.NoError(t, err)
	}

	list, err := f.svc.GetOrders(context.Background(), types.OrderFilter{Status: "all", Email: "shop"})
	require.NoError(t, err)
	require.Len(t, list.Orders, 2)
	assert.Equal(t, "three@SHOP.ru", list.Orders[0].Email)
}

func TestExportOrders(t *testing.T) {
	f := newOrderFixture()
	_, err := f.svc.CreateOrder(context.Background(), validDraft())
	require.NoError(t, err)

	data, name, err := f.svc.ExportOrders(context.Background(), types.OrderFilter{})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "Заявки_3DPrint_31-01-2025.xlsx", name)
}
