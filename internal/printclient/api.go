package printclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"print3d-service/internal/dto"
)

func (c *Client) listOrders(ctx context.Context, token string) ([]dto.OrderDTO, error) {
	var res dto.OrdersListDTO
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders", token, nil, &res); err != nil {
		return nil, err
	}
	if res.Orders == nil {
		res.Orders = []dto.OrderDTO{}
	}
	return res.Orders, nil
}

func (c *Client) updateOrderStatus(ctx context.Context, token string, id uint64, status string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/orders/status", token, dto.UpdateOrderStatusDTO{OrderID: id, Status: status}, nil)
}

func (c *Client) deleteOrder(ctx context.Context, token string, id uint64) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/orders", token, dto.DeleteOrderDTO{OrderID: id}, nil)
}

func (c *Client) listPortfolio(ctx context.Context, token string) ([]dto.PortfolioItemDTO, error) {
	var res dto.PortfolioListDTO
	if err := c.doJSON(ctx, http.MethodGet, "/api/portfolio", token, nil, &res); err != nil {
		return nil, err
	}
	return res.Portfolio, nil
}

func (c *Client) listClients(ctx context.Context, token string) ([]dto.ClientDTO, error) {
	var res dto.ClientsListDTO
	if err := c.doJSON(ctx, http.MethodGet, "/api/clients", token, nil, &res); err != nil {
		return nil, err
	}
	return res.Clients, nil
}

// mutate выполняет POST/PUT/DELETE справочника и возвращает id из ответа.
func (c *Client) mutate(ctx context.Context, method, path, token string, body interface{}) (uint64, error) {
	var res dto.MutationResultDTO
	if err := c.doJSON(ctx, method, path, token, body, &res); err != nil {
		return 0, err
	}
	return res.ID, nil
}

func (c *Client) uploadImage(ctx context.Context, token, name string, r io.Reader, uploadContext string) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("не удалось прочитать файл %s: %w", name, err)
	}
	if uploadContext != "" {
		if err := w.WriteField("context", uploadContext); err != nil {
			return "", err
		}
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &body)
	if err != nil {
		return "", fmt.Errorf("ошибка создания запроса загрузки: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var res dto.UploadResultDTO
	if err := c.send(req, token, &res); err != nil {
		return "", err
	}
	return res.URL, nil
}
