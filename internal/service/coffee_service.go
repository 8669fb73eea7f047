package service

import (
	"context"
	"errors"
	"strings"

	"brewlog/internal/models"
	"brewlog/internal/repository"
)

var (
	errWeightRequired = errors.New("weight_g must be greater than zero")
	errAmountRequired = errors.New("amount_g must be greater than zero")
	errBeanIDRequired = errors.New("coffee_bean_id is required")
)

// CoffeeService manages beans and purchase batches.
type CoffeeService struct {
	repo repository.CoffeeRepo
}

func NewCoffeeService(repo repository.CoffeeRepo) *CoffeeService {
	return &CoffeeService{repo: repo}
}

func (s *CoffeeService) CreateBean(ctx context.Context, userID int, b models.CoffeeBean) (models.CoffeeBean, error) {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return models.CoffeeBean{}, errNameRequired
	}
	b.UserID = userID
	id, err := s.repo.CreateBean(ctx, b)
	if err != nil {
		return models.CoffeeBean{}, err
	}
	b.ID = id
	return b, nil
}

func (s *CoffeeService) ListBeans(ctx context.Context, userID int) ([]models.CoffeeBean, error) {
	return s.repo.ListBeans(ctx, userID)
}

func (s *CoffeeService) UpdateBean(ctx context.Context, userID int, b models.CoffeeBean) error {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return errNameRequired
	}
	b.UserID = userID
	return s.repo.UpdateBean(ctx, b)
}

func (s *CoffeeService) DeleteBean(ctx context.Context, userID, id int) error {
	return s.repo.DeleteBean(ctx, userID, id)
}

func (s *CoffeeService) CreateBatch(ctx context.Context, userID int, b models.CoffeeBatch) (models.CoffeeBatch, error) {
	if b.CoffeeBeanID <= 0 {
		return models.CoffeeBatch{}, errBeanIDRequired
	}
	if b.WeightG <= 0 {
		return models.CoffeeBatch{}, errWeightRequired
	}
	id, err := s.repo.CreateBatch(ctx, userID, b)
	if err != nil {
		return models.CoffeeBatch{}, err
	}
	b.ID = id
	if b.CurrentWeightG == 0 {
		b.CurrentWeightG = b.WeightG
	}
	return b, nil
}

func (s *CoffeeService) ListBatches(ctx context.Context, userID, beanID int) ([]models.CoffeeBatch, error) {
	return s.repo.ListBatches(ctx, userID, beanID)
}

func (s *CoffeeService) UpdateBatch(ctx context.Context, userID int, b models.CoffeeBatch) error {
	if b.WeightG <= 0 {
		return errWeightRequired
	}
	return s.repo.UpdateBatch(ctx, userID, b)
}

func (s *CoffeeService) DeleteBatch(ctx context.Context, userID, id int) error {
	return s.repo.DeleteBatch(ctx, userID, id)
}

// ConsumeBatch subtracts used grams from the batch's remaining weight.
// The repository runs the decrement as one atomic statement; weight
// tracking stays explicit and user-driven, it is not wired into brew
// creation.
func (s *CoffeeService) ConsumeBatch(ctx context.Context, userID, id int, amountG float64) (float64, error) {
	if amountG <= 0 {
		return 0, errAmountRequired
	}
	return s.repo.ConsumeBatch(ctx, userID, id, amountG)
}
