// Package printclient - клиент API студии: публичная форма заявки
// и админ-сессия управления заявками, портфолио и клиентами.
package printclient

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"print3d-service/config"
	"print3d-service/internal/i18n"
)

const (
	DefaultSubmitTimeout = 15 * time.Second
	DefaultContactEmail  = "info@3dprintcustoms.ru"
)

type Options struct {
	// BaseURL - адрес сервера без /api, например http://localhost:8080.
	BaseURL    string
	HTTPClient *http.Client
	// SubmitTimeout ограничивает только отправку заявки, остальные вызовы
	// живут по таймаутам транспорта.
	SubmitTimeout      time.Duration
	MaxAttachmentBytes int64
	Language           i18n.Language
	// ContactEmail - куда присылать файлы, не прошедшие по размеру.
	ContactEmail string
	Logger       *zap.Logger
}

type Client struct {
	baseURL       string
	http          *http.Client
	table         *i18n.Table
	submitTimeout time.Duration
	maxAttach     int64
	contactEmail  string
	logger        *zap.Logger
}

func New(opts Options) (*Client, error) {
	catalog, err := i18n.Default()
	if err != nil {
		return nil, err
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.SubmitTimeout <= 0 {
		opts.SubmitTimeout = DefaultSubmitTimeout
	}
	if opts.MaxAttachmentBytes <= 0 {
		opts.MaxAttachmentBytes = config.MaxOrderAttachmentBytes
	}
	if opts.Language == "" {
		opts.Language = i18n.DefaultLanguage
	}
	if opts.ContactEmail == "" {
		opts.ContactEmail = DefaultContactEmail
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Client{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		http:          opts.HTTPClient,
		table:         catalog.Table(opts.Language),
		submitTimeout: opts.SubmitTimeout,
		maxAttach:     opts.MaxAttachmentBytes,
		contactEmail:  opts.ContactEmail,
		logger:        opts.Logger,
	}, nil
}

// T возвращает строку интерфейса на языке клиента.
func (c *Client) T(key string, args ...interface{}) string {
	if len(args) == 0 {
		return c.table.T(key)
	}
	return c.table.Tf(key, args...)
}

func (c *Client) BaseURL() string { return c.baseURL }
