package service

import (
	"context"

	"github.com/leanlee/shopchat/internal/models"
)

// Store is the data access surface the chat service needs per turn. The
// pgx-backed repository bundle implements it in production; tests use an
// in-memory fake.
type Store interface {
	ListPatterns(ctx context.Context) ([]models.Pattern, error)
	GetAnswer(ctx context.Context, intent string) (string, error)

	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListSection(ctx context.Context, section models.ProductSection, page, pageSize int) ([]models.Product, error)

	ListOpenOrders(ctx context.Context, customerID int64) ([]models.Order, error)
	GetOrderBundle(ctx context.Context, id int64) (*models.Order, []models.OrderItem, error)
	HasOrders(ctx context.Context, customerID int64) (bool, error)

	CreateFeedback(ctx context.Context, fb *models.Feedback) error

	GetUserByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	CreateUser(ctx context.Context, name, email string) (*models.UserProfile, error)
}

// Prompter is the blocking console used only in interactive mode, where the
// fallback menu reads choices inline instead of waiting for the next turn.
type Prompter interface {
	Say(msg string)
	Prompt(msg string) (string, error)
}
