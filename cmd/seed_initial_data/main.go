package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"techcom/cmd/seed_initial_data/internal/seedmodels"
	"techcom/internal/config"
	"techcom/internal/database"
	"techcom/internal/domain"
	"techcom/internal/dto"
	"techcom/internal/logger"
	"techcom/internal/repository"
	"techcom/internal/service"
	"techcom/internal/validation"

	"go.uber.org/zap"
)

const (
	defaultSeedFilePath = "configs/seed_data/initial_data.json"
	adminPasswordEnv    = "SEED_ADMIN_PASSWORD"
)

func main() {
	seedFilePath := flag.String("file", defaultSeedFilePath, "path to the seed JSON file")
	flag.Parse()

	ctx := context.Background()
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

	log.Info("Starting initial data seeding process...")
	db, err := database.NewSQLXMySQLDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	log.Info("Loading seed data from file", zap.String("path", *seedFilePath))
	byteValue, err := os.ReadFile(*seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedFilePath), zap.Error(err))
	}

	var seed seedmodels.SeedData
	if err := json.Unmarshal(byteValue, &seed); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}

	userService := service.NewUserService(repository.NewSQLXUserRepository(db))
	tagService := service.NewTagService(
		repository.NewTagRepository(db),
		repository.NewMaterialRepository(db),
		repository.NewQuizRepository(db),
		repository.NewTransactionManagerAdapter(db),
		service.NewResultCacheService(nil, 0),
	)

	if err := seedAdmin(ctx, log, userService, seed.Admin); err != nil {
		log.Fatal("Failed to seed admin account", zap.Error(err))
	}

	created := 0
	for _, name := range seed.Tags {
		_, err := tagService.CreateTag(ctx, dto.TagRequest{Name: name})
		switch {
		case err == nil:
			created++
		case domain.HasCode(err, domain.CodeConflict):
			log.Info("Tag exists", zap.String("name", name))
		default:
			log.Error("Failed to create tag", zap.String("name", name), zap.Error(err))
		}
	}
	log.Info("Initial data seeding process completed.",
		zap.Int("tags_created", created),
		zap.Int("tags_in_file", len(seed.Tags)))
}

func seedAdmin(ctx context.Context, log *zap.Logger, users service.UserService, admin seedmodels.SeedAdmin) error {
	if admin.Email == "" {
		log.Info("No admin account in seed file")
		return nil
	}
	password := os.Getenv(adminPasswordEnv)
	if password == "" {
		return fmt.Errorf("%s must be set to seed the admin account", adminPasswordEnv)
	}

	req := dto.CreateUserRequest{
		Email:    admin.Email,
		Password: password,
		FullName: admin.FullName,
		Role:     string(domain.RoleAdmin),
	}
	if err := validation.NewValidator().ValidateStruct(&req); err != nil {
		return err
	}

	user, err := users.CreateUser(ctx, req)
	if err != nil {
		if domain.HasCode(err, domain.CodeConflict) {
			log.Info("Admin account exists", zap.String("email", admin.Email))
			return nil
		}
		return err
	}
	log.Info("Created admin account", zap.String("id", user.ID), zap.String("email", user.Email))
	return nil
}
