package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event представляет собой любое событие в системе.
type Event interface {
	Name() string
}

// Listener - это обработчик (слушатель) событий.
type Listener func(ctx context.Context, event Event) error

// Bus - шина событий. Слушатели выполняются асинхронно, каждый в своей горутине.
type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	wg        sync.WaitGroup
	timeout   time.Duration
	logger    *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		timeout:   time.Minute,
		logger:    logger,
	}
}

// Subscribe подписывает слушателя на определенное событие.
func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish публикует событие. Ошибки слушателей логируются и не возвращаются издателю.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	listeners := b.listeners[event.Name()]
	b.mu.RUnlock()

	for _, listener := range listeners {
		b.wg.Add(1)
		go func(l Listener) {
			defer b.wg.Done()
			// Контекст запроса к этому моменту может быть уже отменён.
			ctxWithTimeout, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.timeout)
			defer cancel()

			if err := l(ctxWithTimeout, event); err != nil {
				b.logger.Error("Ошибка в обработчике события",
					zap.String("event", event.Name()),
					zap.Error(err),
				)
			}
		}(listener)
	}
}

// Wait блокируется, пока не завершатся все запущенные обработчики.
func (b *Bus) Wait() {
	b.wg.Wait()
}
