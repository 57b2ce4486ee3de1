package printclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"print3d-service/internal/dto"
	"print3d-service/internal/i18n"
	"print3d-service/pkg/constants"
)

const validToken = "secret"

// fakeAPI - сервер в памяти с тем же контрактом, что и настоящий API.
type fakeAPI struct {
	t *testing.T

	mu         sync.Mutex
	token      string
	orders     []dto.OrderDTO
	portfolio  []dto.PortfolioItemDTO
	clients    []dto.ClientDTO
	nextID     uint64
	calls      []string
	created    []dto.CreateOrderDTO
	listStatus int
	failPaths  map[string]int
	uploads    []string

	server *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	api := &fakeAPI{
		t:         t,
		token:     validToken,
		nextID:    100,
		failPaths: map[string]int{},
		orders: []dto.OrderDTO{
			{ID: 1, OrderNumber: "3DP-20260101-AAAAAAAA", Email: "ivan@shop.ru", Status: constants.StatusNew, CustomerType: constants.CustomerIndividual},
			{ID: 2, OrderNumber: "3DP-20260101-BBBBBBBB", Email: "Olga@Factory.ru", Status: constants.StatusProcessing, CustomerType: constants.CustomerLegal},
			{ID: 3, OrderNumber: "3DP-20260101-CCCCCCCC", Email: "petr@shop.ru", Status: constants.StatusCompleted, CustomerType: constants.CustomerIndividual},
		},
	}
	api.server = httptest.NewServer(http.HandlerFunc(api.handle))
	t.Cleanup(api.server.Close)
	return api
}

func (a *fakeAPI) client(t *testing.T) *Client {
	c, err := New(Options{BaseURL: a.server.URL, Language: i18n.RU})
	require.NoError(t, err)
	return c
}

func (a *fakeAPI) setToken(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
}

func (a *fakeAPI) failRoute(route string, code int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failPaths[route] = code
}

func (a *fakeAPI) setListStatus(code int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listStatus = code
}

func (a *fakeAPI) createdOrders() []dto.CreateOrderDTO {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.created)
}

func (a *fakeAPI) uploadContexts() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.uploads)
}

func (a *fakeAPI) callLog() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.calls)
}

func (a *fakeAPI) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *fakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	route := r.Method + " " + r.URL.Path
	a.calls = append(a.calls, route)

	if code, ok := a.failPaths[route]; ok {
		a.writeJSON(w, code, map[string]interface{}{"status": false, "message": "ошибка"})
		return
	}

	public := route == "POST /api/orders" || (r.Method == http.MethodGet && r.URL.Path != "/api/orders")
	if !public && r.Header.Get(constants.HeaderAdminToken) != a.token {
		a.writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"status": false, "message": "Неверный токен доступа"})
		return
	}

	switch route {
	case "POST /api/orders":
		var in dto.CreateOrderDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			a.writeJSON(w, http.StatusBadRequest, map[string]interface{}{"status": false})
			return
		}
		a.created = append(a.created, in)
		a.writeJSON(w, http.StatusOK, dto.OrderConfirmationDTO{Success: true, OrderNumber: "3DP-20260101-ABCDEF12", Email: in.Email})

	case "GET /api/orders":
		if a.listStatus != 0 {
			a.writeJSON(w, a.listStatus, map[string]interface{}{"status": false, "message": "сбой"})
			return
		}
		a.writeJSON(w, http.StatusOK, dto.OrdersListDTO{Orders: a.orders})

	case "POST /api/orders/status":
		var in dto.UpdateOrderStatusDTO
		_ = json.NewDecoder(r.Body).Decode(&in)
		for i := range a.orders {
			if a.orders[i].ID == in.OrderID {
				a.orders[i].Status = in.Status
				a.orders[i].UpdatedAt = time.Now()
				a.writeJSON(w, http.StatusOK, dto.OrderStatusUpdatedDTO{Success: true, OrderID: in.OrderID, Status: in.Status})
				return
			}
		}
		a.writeJSON(w, http.StatusNotFound, map[string]interface{}{"status": false, "message": "запись не найдена"})

	case "DELETE /api/orders":
		var in dto.DeleteOrderDTO
		_ = json.NewDecoder(r.Body).Decode(&in)
		idx := slices.IndexFunc(a.orders, func(o dto.OrderDTO) bool { return o.ID == in.OrderID })
		if idx < 0 {
			a.writeJSON(w, http.StatusNotFound, map[string]interface{}{"status": false, "message": "запись не найдена"})
			return
		}
		a.orders = slices.Delete(a.orders, idx, idx+1)
		a.writeJSON(w, http.StatusOK, dto.MutationResultDTO{Success: true})

	case "GET /api/portfolio":
		a.writeJSON(w, http.StatusOK, dto.PortfolioListDTO{Portfolio: a.portfolio})

	case "POST /api/portfolio":
		var in dto.CreatePortfolioDTO
		_ = json.NewDecoder(r.Body).Decode(&in)
		a.nextID++
		a.portfolio = append(a.portfolio, dto.PortfolioItemDTO{
			ID:           a.nextID,
			Title:        in.Title,
			Description:  in.Description,
			ImageURL:     in.ImageURL,
			DisplayOrder: in.DisplayOrder,
			IsVisible:    !in.IsVisible.Valid || in.IsVisible.Bool,
		})
		a.writeJSON(w, http.StatusCreated, dto.MutationResultDTO{Success: true, ID: a.nextID})

	case "PUT /api/portfolio":
		var in dto.UpdatePortfolioDTO
		_ = json.NewDecoder(r.Body).Decode(&in)
		for i := range a.portfolio {
			if a.portfolio[i].ID == in.ID {
				if in.Title.Valid {
					a.portfolio[i].Title = in.Title.String
				}
				if in.IsVisible.Valid {
					a.portfolio[i].IsVisible = in.IsVisible.Bool
				}
				a.writeJSON(w, http.StatusOK, dto.MutationResultDTO{Success: true, ID: in.ID})
				return
			}
		}
		a.writeJSON(w, http.StatusNotFound, map[string]interface{}{"status": false})

	case "DELETE /api/portfolio":
		var in dto.IDRequestDTO
		_ = json.NewDecoder(r.Body).Decode(&in)
		a.portfolio = slices.DeleteFunc(a.portfolio, func(p dto.PortfolioItemDTO) bool { return p.ID == in.ID })
		a.writeJSON(w, http.StatusOK, dto.MutationResultDTO{Success: true, ID: in.ID})

	case "GET /api/clients":
		a.writeJSON(w, http.StatusOK, dto.ClientsListDTO{Clients: a.clients})

	case "POST /api/clients":
		var in dto.CreateClientDTO
		_ = json.NewDecoder(r.Body).Decode(&in)
		a.nextID++
		a.clients = append(a.clients, dto.ClientDTO{ID: a.nextID, Name: in.Name, LogoURL: in.LogoURL, IsVisible: true})
		a.writeJSON(w, http.StatusCreated, dto.MutationResultDTO{Success: true, ID: a.nextID})

	case "POST /api/upload":
		file, header, err := r.FormFile("file")
		if err != nil {
			a.writeJSON(w, http.StatusBadRequest, map[string]interface{}{"status": false})
			return
		}
		file.Close()
		a.uploads = append(a.uploads, r.FormValue("context"))
		a.writeJSON(w, http.StatusOK, dto.UploadResultDTO{URL: a.server.URL + "/uploads/portfolio/" + header.Filename})

	default:
		a.writeJSON(w, http.StatusNotFound, map[string]interface{}{"status": false})
	}
}

func countCalls(calls []string, route string) int {
	n := 0
	for _, c := range calls {
		if c == route {
			n++
		}
	}
	return n
}
