package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/contactsupport/backend/internal/config"
	"github.com/contactsupport/backend/internal/db"
	"github.com/contactsupport/backend/internal/model"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&model.SupportMessage{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	var count int64
	if err := gdb.WithContext(ctx).Model(&model.SupportMessage{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count messages: %w", err)
	}
	force := strings.EqualFold(os.Getenv("FORCE_SEED"), "true")
	if count > 0 && !force {
		log.Printf("support messages already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	msgs := buildSeedMessages()
	if err := gdb.WithContext(ctx).Create(&msgs).Error; err != nil {
		return fmt.Errorf("insert messages: %w", err)
	}

	log.Printf("seeded %d support messages", len(msgs))
	return nil
}

func buildSeedMessages() []model.SupportMessage {
	answered := "Go to the login page and click 'Forgot Password'. You'll receive a reset email."
	return []model.SupportMessage{
		{
			Name:       "John Doe",
			Email:      "john@example.com",
			Message:    "How can I reset my password?",
			AIResponse: &answered,
		},
		{
			Name:    "Jane Smith",
			Email:   "jane@example.com",
			Message: "I was charged twice for my subscription this month.",
		},
		{
			Name:    "John Doe",
			Email:   "john@example.com",
			Message: "Never mind, the reset email arrived. Thanks!",
		},
		{
			Name:    "Akira Tanaka",
			Email:   "akira@example.com",
			Message: "Does the mobile app support offline mode?",
		},
	}
}
