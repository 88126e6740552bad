package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"techcom/internal/config"
	"techcom/internal/database"
	"techcom/internal/dto"
	"techcom/internal/logger"
	"techcom/internal/repository"
	"techcom/internal/service"

	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "", "JSON file holding an array of questions")
	author := flag.String("author", "", "email of the user recorded as the questions' creator")
	quizID := flag.String("quiz", "", "optional quiz id; imported questions are appended to it")
	flag.Parse()

	if *file == "" || *author == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal("Failed to read question file", zap.String("path", *file), zap.Error(err))
	}
	var questions []dto.CreateQuestionRequest
	if err := json.Unmarshal(raw, &questions); err != nil {
		log.Fatal("Failed to parse question file", zap.Error(err))
	}

	db, err := database.NewSQLXMySQLDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	users := repository.NewSQLXUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	links := repository.NewQuizQuestionRepository(db)
	tx := repository.NewTransactionManagerAdapter(db)
	results := service.NewResultCacheService(nil, 0)

	importer := &questionImporter{
		questions: service.NewQuestionService(questionRepo, links, tx, results),
		composition: service.NewCompositionService(
			repository.NewQuizRepository(db), questionRepo, links, repository.NewTagRepository(db), tx, results),
		log: log,
	}

	user, err := users.GetByEmail(ctx, *author)
	if err != nil {
		log.Fatal("Failed to look up author", zap.Error(err))
	}
	if user == nil {
		log.Fatal("Author not found", zap.String("email", *author))
	}

	summary := importer.Import(ctx, user.ID, *quizID, questions)
	log.Info("Question import finished",
		zap.Int("total", len(questions)),
		zap.Int("imported", summary.Imported),
		zap.Int("failed", summary.Failed))
	if summary.Failed > 0 {
		os.Exit(1)
	}
}
