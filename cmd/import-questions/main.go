package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/yourusername/quizgame-api/internal/config"
	pgRepo "github.com/yourusername/quizgame-api/internal/repository/postgres"
	"github.com/yourusername/quizgame-api/internal/service"
	"github.com/yourusername/quizgame-api/pkg/database"
)

// Утилита для разовой загрузки вопросов из xlsx-файла в базу.
// Использование: import-questions -file questions.xlsx
func main() {
	filePath := flag.String("file", "", "путь к xlsx-файлу с вопросами")
	flag.Parse()

	if *filePath == "" {
		log.Println("Не указан файл: используйте -file questions.xlsx")
		os.Exit(1)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	questionRepo := pgRepo.NewQuestionRepo(db)
	themeRepo := pgRepo.NewThemeRepo(db)
	importService := service.NewImportService(questionRepo, themeRepo)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	imported, err := importService.ImportFromFile(ctx, *filePath)
	if err != nil {
		log.Printf("Импорт прерван после %d вопросов: %v", imported, err)
		os.Exit(1)
	}

	log.Printf("Готово: импортировано %d вопросов из %s", imported, *filePath)
}
