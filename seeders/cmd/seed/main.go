package main

import (
	"context"
	"flag"
	"log"

	"print3d-service/migrations"
	"print3d-service/pkg/config"
	"print3d-service/pkg/database/postgresql"
	"print3d-service/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runPortfolio := flag.Bool("portfolio", false, "Наполнить портфолио демонстрационными работами")
	runClients := flag.Bool("clients", false, "Наполнить список клиентов")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -portfolio -clients)")
	force := flag.Bool("force", false, "Добавлять записи, даже если таблица не пуста")

	flag.Parse()

	if !*runPortfolio && !*runClients && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -portfolio")
		log.Println("  go run ./seeders/cmd/seed -all -force")
		log.Println("======================================================")
		return
	}

	ctx := context.Background()
	cfg := config.New()
	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer dbPool.Close()

	if err := migrations.Up(ctx, dbPool); err != nil {
		log.Fatalf("❌ Ошибка применения миграций: %v", err)
	}

	log.Println("======================================================")

	if *runAll || *runPortfolio {
		if err := seeders.SeedPortfolio(ctx, dbPool, *force); err != nil {
			log.Fatalf("❌ Ошибка наполнения портфолио: %v", err)
		}
	}
	if *runAll || *runClients {
		if err := seeders.SeedClients(ctx, dbPool, *force); err != nil {
			log.Fatalf("❌ Ошибка наполнения клиентов: %v", err)
		}
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
