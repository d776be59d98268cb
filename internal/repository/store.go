package repository

import (
	"context"

	"github.com/leanlee/shopchat/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Store bundles the per-table repositories behind the single handle the chat
// service is wired against, so tests can swap in an in-memory fake.
type Store struct {
	Patterns *PatternRepository
	Answers  *AnswerRepository
	Products *ProductRepository
	Orders   *OrderRepository
	Feedback *FeedbackRepository
	Users    *UserRepository
}

func NewStore(db *pgxpool.Pool, logger *zap.Logger) *Store {
	return &Store{
		Patterns: NewPatternRepository(db, logger),
		Answers:  NewAnswerRepository(db, logger),
		Products: NewProductRepository(db, logger),
		Orders:   NewOrderRepository(db, logger),
		Feedback: NewFeedbackRepository(db, logger),
		Users:    NewUserRepository(db, logger),
	}
}

func (s *Store) ListPatterns(ctx context.Context) ([]models.Pattern, error) {
	return s.Patterns.ListAll(ctx)
}

func (s *Store) GetAnswer(ctx context.Context, intent string) (string, error) {
	return s.Answers.GetByIntent(ctx, intent)
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.Products.GetByID(ctx, id)
}

func (s *Store) ListSection(ctx context.Context, section models.ProductSection, page, pageSize int) ([]models.Product, error) {
	return s.Products.ListSection(ctx, section, page, pageSize)
}

func (s *Store) ListOpenOrders(ctx context.Context, customerID int64) ([]models.Order, error) {
	return s.Orders.ListOpenByCustomer(ctx, customerID)
}

func (s *Store) GetOrderBundle(ctx context.Context, id int64) (*models.Order, []models.OrderItem, error) {
	return s.Orders.GetBundleByID(ctx, id)
}

func (s *Store) HasOrders(ctx context.Context, customerID int64) (bool, error) {
	return s.Orders.HasAnyForCustomer(ctx, customerID)
}

func (s *Store) CreateFeedback(ctx context.Context, fb *models.Feedback) error {
	return s.Feedback.Create(ctx, fb)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	return s.Users.GetByEmail(ctx, email)
}

func (s *Store) CreateUser(ctx context.Context, name, email string) (*models.UserProfile, error) {
	return s.Users.Create(ctx, name, email)
}
