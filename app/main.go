// Файл: main.go

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"print3d-service/internal/listeners"
	"print3d-service/internal/routes"
	"print3d-service/migrations"
	"print3d-service/pkg/config"
	"print3d-service/pkg/constants"
	"print3d-service/pkg/customvalidator"
	"print3d-service/pkg/database/postgresql"
	apperrors "print3d-service/pkg/errors"
	"print3d-service/pkg/eventbus"
	applogger "print3d-service/pkg/logger"
	"print3d-service/pkg/mailer"
	appmiddleware "print3d-service/pkg/middleware"
	"print3d-service/pkg/utils"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 1. Конфиг и логгер
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.File)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HideBanner = true

	// 2. Middleware
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.Server.CORSOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, constants.HeaderAdminToken},
		ExposeHeaders: []string{echo.HeaderContentDisposition},
	}))

	// Вложение до 7 MB в base64 плюс поля формы.
	e.Use(middleware.BodyLimit("10M"))
	e.Use(appmiddleware.RequestLogger(logger))

	// 3. Статические файлы
	absPath, err := filepath.Abs(cfg.Upload.Dir)
	if err != nil {
		logger.Fatal("не удалось получить абсолютный путь к каталогу загрузок", zap.Error(err))
	}
	// Загруженные файлы отдаются с того же origin, поэтому браузеру запрещено
	// угадывать тип и исполнять скрипты из них.
	uploads := e.Group("/uploads", middleware.SecureWithConfig(middleware.SecureConfig{
		ContentTypeNosniff:    "nosniff",
		ContentSecurityPolicy: "sandbox",
	}))
	uploads.Static("/", absPath)

	// 4. Валидатор
	v := customvalidator.New()
	e.Validator = utils.NewValidator(v)

	// 5. База данных и миграции
	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal("не удалось подключиться к PostgreSQL", zap.Error(err))
	}
	defer dbConn.Close()

	if err := migrations.Up(ctx, dbConn); err != nil {
		logger.Fatal("ошибка применения миграций", zap.Error(err))
	}

	// 6. Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	// 7. Шина событий и уведомления
	bus := eventbus.New(logger)
	mail := mailer.New(cfg.SMTP.Server, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, logger)
	listeners.NewNotificationListener(mail, cfg.SMTP.NotifyEmail, cfg.Server.PublicBaseURL, logger).Register(bus)

	// 8. Роуты
	routes.InitRouter(e, dbConn, redisClient, bus, v, &routes.Loggers{
		Main:  logger,
		Auth:  logger.Named("auth"),
		Order: logger.Named("order"),
	}, cfg)

	// 9. Запуск и корректная остановка
	go func() {
		logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Остановка сервера")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки сервера", zap.Error(err))
	}
	// Дожидаемся отправки писем по уже принятым заявкам.
	bus.Wait()
}
