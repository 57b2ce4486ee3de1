package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"print3d-service/internal/dto"
	"print3d-service/internal/export"
	"print3d-service/internal/i18n"
	"print3d-service/internal/services"
	"print3d-service/pkg/config"
	"print3d-service/pkg/constants"
	"print3d-service/pkg/customvalidator"
	apperrors "print3d-service/pkg/errors"
	"print3d-service/pkg/middleware"
	"print3d-service/pkg/types"
	"print3d-service/pkg/utils"
)

const testAdminToken = "secret-token"

type stubOrderService struct {
	created    []dto.CreateOrderDTO
	lastFilter types.OrderFilter
	deleted    []uint64
	statusErr  error
}

func (s *stubOrderService) CreateOrder(_ context.Context, in dto.CreateOrderDTO) (*dto.OrderConfirmationDTO, error) {
	s.created = append(s.created, in)
	return &dto.OrderConfirmationDTO{Success: true, OrderNumber: "3DP-20260101-ABCDEF12", Email: in.Email}, nil
}

func (s *stubOrderService) GetOrders(_ context.Context, filter types.OrderFilter) (*dto.OrdersListDTO, error) {
	s.lastFilter = filter
	return &dto.OrdersListDTO{Orders: []dto.OrderDTO{{ID: 1, OrderNumber: "3DP-1", Status: constants.StatusNew}}}, nil
}

func (s *stubOrderService) UpdateStatus(_ context.Context, in dto.UpdateOrderStatusDTO) (*dto.OrderStatusUpdatedDTO, error) {
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	return &dto.OrderStatusUpdatedDTO{Success: true, OrderID: in.OrderID, Status: in.Status}, nil
}

func (s *stubOrderService) DeleteOrder(_ context.Context, id uint64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubOrderService) ExportOrders(_ context.Context, filter types.OrderFilter) ([]byte, string, error) {
	s.lastFilter = filter
	return []byte("xlsx"), "Заявки_3DPrint_01-01-2026.xlsx", nil
}

func (s *stubOrderService) Estimate(ctx context.Context, in dto.EstimateRequestDTO) (*dto.EstimateDTO, error) {
	return services.CalculateEstimate(in)
}

type stubPortfolioService struct {
	includeHidden []bool
}

func (s *stubPortfolioService) GetPortfolio(_ context.Context, includeHidden bool) (*dto.PortfolioListDTO, error) {
	s.includeHidden = append(s.includeHidden, includeHidden)
	return &dto.PortfolioListDTO{Portfolio: []dto.PortfolioItemDTO{}}, nil
}

func (s *stubPortfolioService) CreatePortfolioItem(_ context.Context, _ dto.CreatePortfolioDTO) (*dto.MutationResultDTO, error) {
	return &dto.MutationResultDTO{Success: true, ID: 5}, nil
}

func (s *stubPortfolioService) UpdatePortfolioItem(_ context.Context, in dto.UpdatePortfolioDTO) (*dto.MutationResultDTO, error) {
	if in.ID == 404 {
		return nil, apperrors.ErrNotFound
	}
	return &dto.MutationResultDTO{Success: true, ID: in.ID}, nil
}

func (s *stubPortfolioService) DeletePortfolioItem(_ context.Context, _ uint64) error { return nil }

type stubClientService struct{}

func (stubClientService) GetClients(_ context.Context, _ bool) (*dto.ClientsListDTO, error) {
	return &dto.ClientsListDTO{Clients: []dto.ClientDTO{}}, nil
}

func (stubClientService) CreateClient(_ context.Context, _ dto.CreateClientDTO) (*dto.MutationResultDTO, error) {
	return &dto.MutationResultDTO{Success: true, ID: 9}, nil
}

func (stubClientService) UpdateClient(_ context.Context, in dto.UpdateClientDTO) (*dto.MutationResultDTO, error) {
	return &dto.MutationResultDTO{Success: true, ID: in.ID}, nil
}

func (stubClientService) DeleteClient(_ context.Context, _ uint64) error { return nil }

type stubUploadService struct {
	contexts []string
}

func (s *stubUploadService) Upload(_ context.Context, fh *multipart.FileHeader, uploadContext string) (*dto.UploadResultDTO, error) {
	s.contexts = append(s.contexts, uploadContext)
	return &dto.UploadResultDTO{URL: "http://localhost/uploads/portfolio/" + fh.Filename}, nil
}

type memoryCounter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func (c *memoryCounter) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
	return c.counts[key], nil
}

func (c *memoryCounter) Expire(_ context.Context, _ string, _ time.Duration) (bool, error) {
	return true, nil
}

func (c *memoryCounter) TTL(_ context.Context, _ string) (time.Duration, error) { return time.Minute, nil }

type RouterTestSuite struct {
	suite.Suite
	Echo      *echo.Echo
	Orders    *stubOrderService
	Portfolio *stubPortfolioService
	Uploads   *stubUploadService
}

func (s *RouterTestSuite) SetupTest() {
	e := echo.New()
	e.Validator = utils.NewValidator(customvalidator.New())

	nopLogger := zap.NewNop()
	s.Orders = &stubOrderService{}
	s.Portfolio = &stubPortfolioService{}
	s.Uploads = &stubUploadService{}

	RegisterRoutes(e, Services{
		Order:       s.Orders,
		Portfolio:   s.Portfolio,
		Client:      stubClientService{},
		Upload:      s.Uploads,
		Translation: services.NewTranslationService(i18n.MustDefault()),
	}, RouterOptions{
		Verifier:    middleware.NewTokenVerifier(testAdminToken, ""),
		RateCounter: &memoryCounter{counts: map[string]int64{}},
		Order:       config.OrderConfig{RateLimit: 2, RateWindow: time.Minute},
	}, &Loggers{Main: nopLogger, Auth: nopLogger, Order: nopLogger})

	s.Echo = e
}

func (s *RouterTestSuite) do(method, path, body string, admin bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if admin {
		req.Header.Set(constants.HeaderAdminToken, testAdminToken)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (s *RouterTestSuite) TestCreateOrderIsPublic() {
	rec := s.do(http.MethodPost, "/api/orders",
		`{"length":100,"width":100,"height":100,"plastic":"pla","color":"white","infill":20,"quantity":1,"customerType":"individual","email":"a@b.com"}`, false)

	s.Equal(http.StatusOK, rec.Code)
	body := decodeBody(s.T(), rec)
	s.Equal(true, body["success"])
	s.Equal("3DP-20260101-ABCDEF12", body["orderNumber"])
	s.Require().Len(s.Orders.created, 1)
	s.Equal(100.0, s.Orders.created[0].Length)
	s.Empty(s.Orders.created[0].FileBase64)
}

func (s *RouterTestSuite) TestCreateOrderMalformedJSON() {
	rec := s.do(http.MethodPost, "/api/orders", `{"length":`, false)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Empty(s.Orders.created)
}

func (s *RouterTestSuite) TestCreateOrderRateLimited() {
	body := `{"email":"a@b.com"}`
	s.Equal(http.StatusOK, s.do(http.MethodPost, "/api/orders", body, false).Code)
	s.Equal(http.StatusOK, s.do(http.MethodPost, "/api/orders", body, false).Code)

	rec := s.do(http.MethodPost, "/api/orders", body, false)
	s.Equal(http.StatusTooManyRequests, rec.Code)
	s.Len(s.Orders.created, 2)
}

func (s *RouterTestSuite) TestAdminRoutesRequireToken() {
	cases := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/orders", ""},
		{http.MethodGet, "/api/orders/export", ""},
		{http.MethodPost, "/api/orders/status", `{"order_id":1,"status":"completed"}`},
		{http.MethodDelete, "/api/orders", `{"order_id":1}`},
		{http.MethodPost, "/api/portfolio", `{"title":"t","image_url":"u"}`},
		{http.MethodPut, "/api/clients", `{"id":1}`},
		{http.MethodPost, "/api/upload", ""},
	}
	for _, tc := range cases {
		rec := s.do(tc.method, tc.path, tc.body, false)
		s.Equal(http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
		s.Equal(false, decodeBody(s.T(), rec)["status"])
	}

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set(constants.HeaderAdminToken, "wrong")
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Empty(s.Orders.deleted)
}

func (s *RouterTestSuite) TestGetOrdersPassesFilter() {
	rec := s.do(http.MethodGet, "/api/orders?status=new&email=%20Ivan%20", "", true)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(types.OrderFilter{Status: "new", Email: "Ivan"}, s.Orders.lastFilter)
	orders, ok := decodeBody(s.T(), rec)["orders"].([]interface{})
	s.Require().True(ok)
	s.Len(orders, 1)
}

func (s *RouterTestSuite) TestUpdateStatusValidation() {
	rec := s.do(http.MethodPost, "/api/orders/status", `{"order_id":1,"status":"shipped"}`, true)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/orders/status", `{"status":"new"}`, true)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/orders/status", `{"order_id":3,"status":"completed"}`, true)
	s.Equal(http.StatusOK, rec.Code)
	body := decodeBody(s.T(), rec)
	s.Equal(float64(3), body["order_id"])
	s.Equal("completed", body["status"])

	s.Orders.statusErr = apperrors.ErrNotFound
	rec = s.do(http.MethodPost, "/api/orders/status", `{"order_id":99,"status":"completed"}`, true)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterTestSuite) TestDeleteOrderReadsJSONBody() {
	rec := s.do(http.MethodDelete, "/api/orders", `{"order_id":42}`, true)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal([]uint64{42}, s.Orders.deleted)

	rec = s.do(http.MethodDelete, "/api/orders", `{}`, true)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Len(s.Orders.deleted, 1)
}

func (s *RouterTestSuite) TestExportOrdersSetsAttachmentHeaders() {
	rec := s.do(http.MethodGet, "/api/orders/export?status=completed", "", true)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(export.SpreadsheetMIME, rec.Header().Get(echo.HeaderContentType))
	s.Contains(rec.Header().Get(echo.HeaderContentDisposition), "attachment;")
	s.Equal("xlsx", rec.Body.String())
	s.Equal("completed", s.Orders.lastFilter.Status)
}

func (s *RouterTestSuite) TestEstimateIsPublic() {
	rec := s.do(http.MethodPost, "/api/orders/estimate",
		`{"length":100,"width":100,"height":100,"plastic":"pla","infill":20,"quantity":1}`, false)

	s.Equal(http.StatusOK, rec.Code)
	body := decodeBody(s.T(), rec)
	s.Equal("1000.00", body["price"])
	s.Equal("RUB", body["currency"])
}

func (s *RouterTestSuite) TestPortfolioVisibilityDependsOnToken() {
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/portfolio", "", false).Code)
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/portfolio", "", true).Code)

	s.Equal([]bool{false, true}, s.Portfolio.includeHidden)
}

func (s *RouterTestSuite) TestPortfolioMutations() {
	rec := s.do(http.MethodPost, "/api/portfolio", `{"title":"Корпус","image_url":"http://x/y.png"}`, true)
	s.Equal(http.StatusCreated, rec.Code)
	s.Equal(float64(5), decodeBody(s.T(), rec)["id"])

	rec = s.do(http.MethodPost, "/api/portfolio", `{"description":"без названия"}`, true)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPut, "/api/portfolio", `{"is_visible":false}`, true)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPut, "/api/portfolio", `{"id":404,"title":"x"}`, true)
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete, "/api/portfolio", `{"id":5}`, true)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterTestSuite) TestClientsCreateReturnsCreated() {
	rec := s.do(http.MethodPost, "/api/clients", `{"name":"ООО Ромашка","logo_url":"http://x/logo.png"}`, true)
	s.Equal(http.StatusCreated, rec.Code)
	s.Equal(float64(9), decodeBody(s.T(), rec)["id"])

	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/clients", "", false).Code)
}

func (s *RouterTestSuite) TestUploadMultipart() {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "logo.png")
	s.Require().NoError(err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n"))
	s.Require().NoError(err)
	s.Require().NoError(w.WriteField("context", "client_logo"))
	s.Require().NoError(w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set(constants.HeaderAdminToken, testAdminToken)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("http://localhost/uploads/portfolio/logo.png", decodeBody(s.T(), rec)["url"])
	s.Equal([]string{"client_logo"}, s.Uploads.contexts)
}

func (s *RouterTestSuite) TestUploadWithoutFile() {
	rec := s.do(http.MethodPost, "/api/upload", `{}`, true)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Empty(s.Uploads.contexts)
}

func (s *RouterTestSuite) TestTranslations() {
	rec := s.do(http.MethodGet, "/api/translations/en", "", false)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(i18n.MustDefault().Table(i18n.EN).T(i18n.KeyFeedbackNetwork), decodeBody(s.T(), rec)[i18n.KeyFeedbackNetwork])

	rec = s.do(http.MethodGet, "/api/translations/de", "", false)
	s.Equal(http.StatusNotFound, rec.Code)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func TestRegisterRoutesDoesNotLimitWhenDisabled(t *testing.T) {
	e := echo.New()
	e.Validator = utils.NewValidator(customvalidator.New())
	orders := &stubOrderService{}
	nopLogger := zap.NewNop()

	RegisterRoutes(e, Services{
		Order:       orders,
		Portfolio:   &stubPortfolioService{},
		Client:      stubClientService{},
		Upload:      &stubUploadService{},
		Translation: services.NewTranslationService(i18n.MustDefault()),
	}, RouterOptions{
		Verifier: middleware.NewTokenVerifier(testAdminToken, ""),
		Order:    config.OrderConfig{RateLimit: 0},
	}, &Loggers{Main: nopLogger, Auth: nopLogger, Order: nopLogger})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"email":"a@b.com"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Len(t, orders.created, 5)
}
