package printclient

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"print3d-service/internal/dto"
	"print3d-service/internal/i18n"
	"print3d-service/pkg/constants"
)

type SessionState int

const (
	LoggedOut SessionState = iota
	Authenticating
	Authenticated
)

func (s SessionState) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "logged_out"
	}
}

// Confirmer спрашивает пользователя перед необратимым действием.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AdminSession - сессия оператора. Токен читается из TokenStore перед каждым
// вызовом и в памяти не хранится. После любой мутации список заявок
// перечитывается с сервера: локально заявки не меняются.
type AdminSession struct {
	client *Client
	store  TokenStore

	mu             sync.Mutex
	state          SessionState
	orders         []dto.OrderDTO
	lastErr        error
	onSessionEnded func()
}

func NewAdminSession(client *Client, store TokenStore) *AdminSession {
	return &AdminSession{client: client, store: store}
}

// OnSessionEnded задаёт обработчик, который вызывается, когда сервер отклонил токен.
func (s *AdminSession) OnSessionEnded(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSessionEnded = fn
}

func (s *AdminSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError - последняя ошибка для показа пользователю, nil после успешного вызова.
func (s *AdminSession) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Orders возвращает последний подтверждённый сервером список.
func (s *AdminSession) Orders() []dto.OrderDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.orders)
}

func (s *AdminSession) Filtered(status, emailSubstring string) []dto.OrderDTO {
	return FilterOrders(s.Orders(), status, emailSubstring)
}

// Login проверяет токен запросом списка заявок. 401 и недоступность сервера
// возвращают сессию в LoggedOut без сохранения токена, любой другой исход - вход.
func (s *AdminSession) Login(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		s.reset(ErrNotAuthenticated)
		return ErrNotAuthenticated
	}

	s.setState(Authenticating)
	orders, err := s.client.listOrders(ctx, token)
	return s.resolve(token, orders, err)
}

// Restore входит по сохранённому токену. Отклонённый сервером токен удаляется.
func (s *AdminSession) Restore(ctx context.Context) error {
	token, err := s.store.Load()
	if err != nil {
		s.reset(err)
		return err
	}
	if token == "" {
		s.reset(nil)
		return ErrNotAuthenticated
	}

	s.setState(Authenticating)
	orders, err := s.client.listOrders(ctx, token)
	if errors.Is(err, ErrUnauthorized) {
		if clearErr := s.store.Clear(); clearErr != nil {
			s.client.logger.Warn("Не удалось удалить устаревший токен", zap.Error(clearErr))
		}
	}
	return s.resolve(token, orders, err)
}

func (s *AdminSession) resolve(token string, orders []dto.OrderDTO, err error) error {
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNetwork) {
		s.reset(err)
		return err
	}
	if saveErr := s.store.Save(token); saveErr != nil {
		s.reset(saveErr)
		return saveErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Authenticated
	s.lastErr = err
	if err == nil {
		s.orders = orders
	}
	return nil
}

// Logout удаляет токен и очищает список заявок.
func (s *AdminSession) Logout() error {
	err := s.store.Clear()
	s.reset(nil)
	return err
}

func (s *AdminSession) setState(state SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *AdminSession) reset(lastErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = LoggedOut
	s.orders = nil
	s.lastErr = lastErr
}

func (s *AdminSession) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

// authorized - единая точка для всех вызовов с токеном. На 401 токен удаляется,
// сессия сбрасывается и вызывается OnSessionEnded.
func (s *AdminSession) authorized(call func(token string) error) error {
	token, err := s.store.Load()
	if err != nil {
		return err
	}
	if token == "" {
		s.reset(ErrNotAuthenticated)
		return ErrNotAuthenticated
	}

	err = call(token)
	if errors.Is(err, ErrUnauthorized) {
		s.endSession()
	}
	return err
}

func (s *AdminSession) endSession() {
	if err := s.store.Clear(); err != nil {
		s.client.logger.Warn("Не удалось удалить токен", zap.Error(err))
	}
	s.reset(ErrUnauthorized)

	s.mu.Lock()
	cb := s.onSessionEnded
	s.mu.Unlock()

	s.client.logger.Info(s.client.T(i18n.KeyAdminSessionEnded))
	if cb != nil {
		cb()
	}
}

// ListOrders перечитывает заявки. При ошибке сервера сессия остаётся активной,
// а прежний список - на месте.
func (s *AdminSession) ListOrders(ctx context.Context) ([]dto.OrderDTO, error) {
	var orders []dto.OrderDTO
	err := s.authorized(func(token string) error {
		var err error
		orders, err = s.client.listOrders(ctx, token)
		return err
	})
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = orders
	s.lastErr = nil
	return slices.Clone(orders), nil
}

// UpdateStatus меняет статус (переход из любого статуса в любой) и перечитывает список.
func (s *AdminSession) UpdateStatus(ctx context.Context, orderID uint64, status string) error {
	if !constants.IsValidStatus(status) {
		return ErrInvalidStatus
	}

	err := s.authorized(func(token string) error {
		return s.client.updateOrderStatus(ctx, token, orderID, status)
	})
	if err != nil {
		s.fail(err)
		return err
	}

	_, err = s.ListOrders(ctx)
	return err
}

// DeleteOrder удаляет заявку только после подтверждения и перечитывает список.
// Без подтверждения запрос не отправляется.
func (s *AdminSession) DeleteOrder(ctx context.Context, orderID uint64, confirm Confirmer) error {
	if confirm == nil || !confirm.Confirm(s.client.T(i18n.KeyAdminConfirmDelete, orderID)) {
		return ErrNotConfirmed
	}

	err := s.authorized(func(token string) error {
		return s.client.deleteOrder(ctx, token, orderID)
	})
	if err != nil {
		s.fail(err)
		return err
	}

	_, err = s.ListOrders(ctx)
	return err
}
