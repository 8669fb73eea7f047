package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"brewlog/internal/models"
	"brewlog/internal/repository/db"
)

// ErrNotFound is returned when a row does not exist or is not owned by
// the requesting user. Handlers map it to 404.
var ErrNotFound = errors.New("not found")

type Authorization interface {
	Create(username, hash string, isGuest bool) (int, error)
	GetByUsername(username string) (*models.User, error)
	GetByID(id int) (*models.User, error)
	Promote(id int, username, hash string) error
}

type EquipmentRepo interface {
	CreateGrinder(ctx context.Context, g models.Grinder) (int, error)
	ListGrinders(ctx context.Context, userID int) ([]models.Grinder, error)
	UpdateGrinder(ctx context.Context, g models.Grinder) error
	DeleteGrinder(ctx context.Context, userID, id int) error

	CreateBrewer(ctx context.Context, b models.Brewer) (int, error)
	ListBrewers(ctx context.Context, userID int) ([]models.Brewer, error)
	UpdateBrewer(ctx context.Context, b models.Brewer) error
	DeleteBrewer(ctx context.Context, userID, id int) error

	CreateServer(ctx context.Context, s models.Server) (int, error)
	ListServers(ctx context.Context, userID int) ([]models.Server, error)
	UpdateServer(ctx context.Context, s models.Server) error
	DeleteServer(ctx context.Context, userID, id int) error
}

type CoffeeRepo interface {
	CreateBean(ctx context.Context, b models.CoffeeBean) (int, error)
	ListBeans(ctx context.Context, userID int) ([]models.CoffeeBean, error)
	UpdateBean(ctx context.Context, b models.CoffeeBean) error
	DeleteBean(ctx context.Context, userID, id int) error

	CreateBatch(ctx context.Context, userID int, b models.CoffeeBatch) (int, error)
	ListBatches(ctx context.Context, userID, beanID int) ([]models.CoffeeBatch, error)
	UpdateBatch(ctx context.Context, userID int, b models.CoffeeBatch) error
	DeleteBatch(ctx context.Context, userID, id int) error
	// ConsumeBatch decrements remaining weight in one atomic statement
	// and returns the new remaining weight.
	ConsumeBatch(ctx context.Context, userID, id int, amountG float64) (float64, error)
}

type RecipeRepo interface {
	Create(ctx context.Context, r models.Recipe) (int, error)
	List(ctx context.Context, userID int) ([]models.Recipe, error)
	GetByID(ctx context.Context, userID, id int) (models.Recipe, error)
	Update(ctx context.Context, r models.Recipe) error
	Delete(ctx context.Context, userID, id int) error
	SetFavorite(ctx context.Context, userID, id int, favorite bool) error
}

type BrewRepo interface {
	Create(ctx context.Context, b models.Brew) (int, error)
	List(ctx context.Context, userID int, from, to time.Time, beanID int, favoriteOnly bool) ([]models.Brew, error)
	GetByID(ctx context.Context, userID, id int) (models.Brew, error)
	UpdateEvaluation(ctx context.Context, userID, id, rating int, comment string, tds, extractionYield *float64) error
	SetPhoto(ctx context.Context, userID, id int, path string) error
	SetFavorite(ctx context.Context, userID, id int, favorite bool) error
	Delete(ctx context.Context, userID, id int) error
}

type StatsRepo interface {
	Usage(ctx context.Context) (models.UsageStats, error)
	BrewsPerDay(ctx context.Context, since time.Time) ([]models.DayCount, error)
}

type Repository struct {
	Auth      Authorization
	Equipment EquipmentRepo
	Coffee    CoffeeRepo
	Recipes   RecipeRepo
	Brews     BrewRepo
	Stats     StatsRepo
}

func NewRepository(database *sql.DB) *Repository {
	return &Repository{
		Auth:      NewUserRepository(database),
		Equipment: NewEquipmentSQLite(database),
		Coffee:    NewCoffeeSQLite(database),
		Recipes:   NewRecipeSQLite(database),
		Brews:     NewBrewSQLite(database),
		Stats:     NewStatsSQLite(database),
	}
}

// InitDB re-exports the SQLite bootstrap so main only imports this package.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
