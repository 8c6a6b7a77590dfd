package main

import (
	"context"
	"log"
	"time"

	"shop-api/internal/config"
	"shop-api/internal/db"
	"shop-api/internal/domain"
	"shop-api/internal/repository"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func floatPtr(v float64) *float64 { return &v }

// Catálogo de demostración para ambientes locales.
var demoProducts = []domain.Product{
	{
		Heading:  "Red Runner Sneakers",
		AltText:  []string{"red-runner-sneakers"},
		Price:    2490,
		OldPrice: floatPtr(2990),
		InStock:  true,
		Category: "shoes",
		Properties: []domain.Property{
			{Key: "Color", Value: "Red"},
			{Key: "Material", Value: "Mesh"},
		},
	},
	{
		Heading:  "Red Trail Jacket",
		AltText:  []string{"red-trail-jacket"},
		Price:    3190,
		InStock:  true,
		Category: "jackets",
		Properties: []domain.Property{
			{Key: "Color", Value: "Red"},
			{Key: "Manufacturer", Value: "Northwind"},
		},
	},
	{
		Heading:  "Blue Canvas Backpack",
		AltText:  []string{"blue-canvas-backpack"},
		Price:    1590,
		InStock:  true,
		Category: "bags",
		Properties: []domain.Property{
			{Key: "Color", Value: "Blue"},
			{Key: "Size", Value: "20L"},
		},
	},
	{
		Heading:  "Steel Water Bottle",
		AltText:  []string{"steel-water-bottle"},
		Price:    690,
		InStock:  false,
		Category: "accessories",
		Properties: []domain.Property{
			{Key: "Material", Value: "Stainless Steel"},
		},
	},
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	products := repository.NewPgProductRepository(pool)
	for _, p := range demoProducts {
		p.ID = uuid.NewString()
		p.CreatedAt = time.Now().UTC()
		if err := products.Create(ctx, p); err != nil {
			logger.Fatal("seed product", zap.String("heading", p.Heading), zap.Error(err))
		}
		logger.Info("seeded product", zap.String("id", p.ID), zap.String("heading", p.Heading))
	}
}
