package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"print3d-service/internal/dto"
	"print3d-service/internal/entities"
	"print3d-service/internal/repositories"
	apperrors "print3d-service/pkg/errors"
	"print3d-service/pkg/eventbus"
	"print3d-service/pkg/types"
)

type fakeOrderRepo struct {
	orders  []entities.Order
	nextID  uint64
	failErr error
}

func (r *fakeOrderRepo) CreateOrder(_ context.Context, order *entities.Order) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.nextID++
	order.ID = r.nextID
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	r.orders = append(r.orders, *order)
	return nil
}

func (r *fakeOrderRepo) GetOrders(_ context.Context, filter types.OrderFilter) ([]entities.Order, error) {
	out := make([]entities.Order, 0)
	for i := len(r.orders) - 1; i >= 0; i-- {
		o := r.orders[i]
		if !filter.MatchesAnyStatus() && o.Status != filter.Status {
			continue
		}
		if filter.Email != "" && !strings.Contains(strings.ToLower(o.Email), strings.ToLower(filter.Email)) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOrderRepo) FindOrder(_ context.Context, id uint64) (*entities.Order, error) {
	for i := range r.orders {
		if r.orders[i].ID == id {
			o := r.orders[i]
			return &o, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uint64, status string) (*entities.Order, error) {
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			r.orders[i].UpdatedAt = time.Now()
			o := r.orders[i]
			return &o, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeOrderRepo) DeleteOrder(_ context.Context, id uint64) (*entities.Order, error) {
	for i := range r.orders {
		if r.orders[i].ID == id {
			o := r.orders[i]
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return &o, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

type fakeFileStorage struct {
	saved   map[string][]byte
	deleted []string
	seq     int
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{saved: make(map[string][]byte)}
}

func (s *fakeFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", err
	}
	s.seq++
	path := fmt.Sprintf("%s/%d-%s", prefix, s.seq, originalFileName)
	s.saved[path] = buf.Bytes()
	return path, nil
}

func (s *fakeFileStorage) Delete(fileURL string) error {
	s.deleted = append(s.deleted, fileURL)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event eventbus.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

type fakeCache struct {
	data map[string]string
	gets int
}

func newFakeCache() *fakeCache { return &fakeCache{data: make(map[string]string)} }

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	default:
		c.data[key] = fmt.Sprint(v)
	}
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.gets++
	v, ok := c.data[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *fakeCache) Incr(_ context.Context, _ string) (int64, error) { return 1, nil }

func (c *fakeCache) Expire(_ context.Context, _ string, _ time.Duration) (bool, error) {
	return true, nil
}

func (c *fakeCache) TTL(_ context.Context, _ string) (time.Duration, error) { return time.Minute, nil }

type fakePortfolioRepo struct {
	items []entities.PortfolioItem
	reads int
}

func (r *fakePortfolioRepo) GetPortfolio(_ context.Context, onlyVisible bool) ([]entities.PortfolioItem, error) {
	r.reads++
	out := make([]entities.PortfolioItem, 0)
	for _, item := range r.items {
		if onlyVisible && !item.IsVisible {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *fakePortfolioRepo) CreatePortfolioItem(_ context.Context, item entities.PortfolioItem) (uint64, error) {
	item.ID = uint64(len(r.items) + 1)
	r.items = append(r.items, item)
	return item.ID, nil
}

func (r *fakePortfolioRepo) UpdatePortfolioItem(_ context.Context, upd dto.UpdatePortfolioDTO) error {
	for i := range r.items {
		if r.items[i].ID == upd.ID {
			if upd.Title.Valid {
				r.items[i].Title = upd.Title.String
			}
			if upd.IsVisible.Valid {
				r.items[i].IsVisible = upd.IsVisible.Bool
			}
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *fakePortfolioRepo) DeletePortfolioItem(_ context.Context, id uint64) error {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

type fakeClientRepo struct {
	clients []entities.Client
}

func (r *fakeClientRepo) GetClients(_ context.Context, onlyVisible bool) ([]entities.Client, error) {
	out := make([]entities.Client, 0)
	for _, c := range r.clients {
		if onlyVisible && !c.IsVisible {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeClientRepo) CreateClient(_ context.Context, c entities.Client) (uint64, error) {
	c.ID = uint64(len(r.clients) + 1)
	r.clients = append(r.clients, c)
	return c.ID, nil
}

func (r *fakeClientRepo) UpdateClient(_ context.Context, upd dto.UpdateClientDTO) error {
	for i := range r.clients {
		if r.clients[i].ID == upd.ID {
			if upd.Name.Valid {
				r.clients[i].Name = upd.Name.String
			}
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *fakeClientRepo) DeleteClient(_ context.Context, id uint64) error {
	for i := range r.clients {
		if r.clients[i].ID == id {
			r.clients = append(r.clients[:i], r.clients[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}
