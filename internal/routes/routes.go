package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"print3d-service/internal/i18n"
	"print3d-service/internal/repositories"
	"print3d-service/internal/services"
	"print3d-service/pkg/config"
	"print3d-service/pkg/filestorage"
	"print3d-service/pkg/middleware"
)

type Loggers struct {
	Main  *zap.Logger
	Auth  *zap.Logger
	Order *zap.Logger
}

// Services - всё, что нужно маршрутам. В тестах подменяется заглушками.
type Services struct {
	Order       services.OrderServiceInterface
	Portfolio   services.PortfolioServiceInterface
	Client      services.ClientServiceInterface
	Upload      services.UploadServiceInterface
	Translation services.TranslationServiceInterface
}

// RouterOptions - настройки защиты маршрутов.
type RouterOptions struct {
	Verifier    middleware.TokenVerifier
	RateCounter middleware.Counter
	Order       config.OrderConfig
}

func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	bus services.EventPublisher,
	validate *validator.Validate,
	loggers *Loggers,
	cfg *config.Config,
) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Upload.Dir)
	if err != nil {
		loggers.Main.Fatal("не удалось создать файловое хранилище", zap.Error(err))
	}
	catalog, err := i18n.Default()
	if err != nil {
		loggers.Main.Fatal("не удалось загрузить таблицы переводов", zap.Error(err))
	}
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- 1. РЕПОЗИТОРИИ ---
	orderRepo := repositories.NewOrderRepository(dbConn, loggers.Order)
	portfolioRepo := repositories.NewPortfolioRepository(dbConn)
	clientRepo := repositories.NewClientRepository(dbConn)

	// --- 2. СЕРВИСЫ ---
	svc := Services{
		Order:       services.NewOrderService(orderRepo, fileStorage, bus, validate, loggers.Order),
		Portfolio:   services.NewPortfolioService(portfolioRepo, cacheRepo, cfg.Order.PublicCacheTTL, loggers.Main),
		Client:      services.NewClientService(clientRepo, cacheRepo, cfg.Order.PublicCacheTTL, loggers.Main),
		Upload:      services.NewUploadService(fileStorage, cfg.Server.PublicBaseURL, loggers.Main),
		Translation: services.NewTranslationService(catalog),
	}

	// --- 3. РОУТЕРЫ ---
	RegisterRoutes(e, svc, RouterOptions{
		Verifier:    middleware.NewTokenVerifier(cfg.Admin.Token, cfg.Admin.TokenHash),
		RateCounter: cacheRepo,
		Order:       cfg.Order,
	}, loggers)

	loggers.Main.Info("INIT_ROUTER: Создание маршрутов завершено")
}

// RegisterRoutes вешает все маршруты /api на готовые сервисы.
func RegisterRoutes(e *echo.Echo, svc Services, opts RouterOptions, loggers *Loggers) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(opts.Verifier, loggers.Auth)

	runOrderRouter(api, svc.Order, opts, loggers.Order, authMW)
	runPortfolioRouter(api, svc.Portfolio, loggers.Main, authMW)
	runClientRouter(api, svc.Client, loggers.Main, authMW)
	runUploadRouter(api, svc.Upload, loggers.Main, authMW)
	runTranslationRouter(api, svc.Translation, loggers.Main)
}
