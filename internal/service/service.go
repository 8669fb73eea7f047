package service

import (
	"context"
	"time"

	"brewlog/internal/ai"
	"brewlog/internal/brewing"
	"brewlog/internal/models"
	"brewlog/internal/repository"
)

// TokenClaims is what the middleware learns from a parsed access token.
type TokenClaims struct {
	UserID  int
	IsGuest bool
	IsAdmin bool
}

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	CreateGuest() (string, error)
	MigrateGuest(userID int, username, password string) (string, error)
	ParseToken(accessToken string) (TokenClaims, error)
}

// Equipment manages the grinder/brewer/server registry.
type Equipment interface {
	CreateGrinder(ctx context.Context, userID int, g models.Grinder) (models.Grinder, error)
	ListGrinders(ctx context.Context, userID int) ([]models.Grinder, error)
	UpdateGrinder(ctx context.Context, userID int, g models.Grinder) error
	DeleteGrinder(ctx context.Context, userID, id int) error

	CreateBrewer(ctx context.Context, userID int, b models.Brewer) (models.Brewer, error)
	ListBrewers(ctx context.Context, userID int) ([]models.Brewer, error)
	UpdateBrewer(ctx context.Context, userID int, b models.Brewer) error
	DeleteBrewer(ctx context.Context, userID, id int) error

	CreateServer(ctx context.Context, userID int, s models.Server) (models.Server, error)
	ListServers(ctx context.Context, userID int) ([]models.Server, error)
	UpdateServer(ctx context.Context, userID int, s models.Server) error
	DeleteServer(ctx context.Context, userID, id int) error
}

// Coffee manages beans and their purchase batches.
type Coffee interface {
	CreateBean(ctx context.Context, userID int, b models.CoffeeBean) (models.CoffeeBean, error)
	ListBeans(ctx context.Context, userID int) ([]models.CoffeeBean, error)
	UpdateBean(ctx context.Context, userID int, b models.CoffeeBean) error
	DeleteBean(ctx context.Context, userID, id int) error

	CreateBatch(ctx context.Context, userID int, b models.CoffeeBatch) (models.CoffeeBatch, error)
	ListBatches(ctx context.Context, userID, beanID int) ([]models.CoffeeBatch, error)
	UpdateBatch(ctx context.Context, userID int, b models.CoffeeBatch) error
	DeleteBatch(ctx context.Context, userID, id int) error
	ConsumeBatch(ctx context.Context, userID, id int, amountG float64) (float64, error)
}

// Recipes manages brew templates.
type Recipes interface {
	Create(ctx context.Context, userID int, r models.Recipe) (models.Recipe, error)
	List(ctx context.Context, userID int) ([]models.Recipe, error)
	Get(ctx context.Context, userID, id int) (models.Recipe, error)
	Update(ctx context.Context, userID int, r models.Recipe) error
	Delete(ctx context.Context, userID, id int) error
	SetFavorite(ctx context.Context, userID, id int, favorite bool) error
}

// BrewFilter narrows brew history queries.
type BrewFilter struct {
	From         time.Time // inclusive; zero means no lower bound
	To           time.Time // inclusive; zero means no upper bound
	BeanID       int       // 0 means any bean
	FavoriteOnly bool
}

// EvaluationParams are the only brew fields editable after creation.
type EvaluationParams struct {
	Rating  int
	Comment string
	TDS     *float64 // %, user-measured; nil clears it
}

// Brews runs the derivation engine over drafts and manages the brew log.
type Brews interface {
	SelectRecipe(ctx context.Context, userID int, d brewing.Draft, recipeID int) (brewing.Draft, error)
	EditDraft(d brewing.Draft, e brewing.Edit) (brewing.Draft, error)
	ResumeDraft(d brewing.Draft, c brewing.CarryOver) (brewing.Draft, error)
	FinalizeDraft(ctx context.Context, userID int, d brewing.Draft) (models.Brew, brewing.Draft, []brewing.FieldError, error)

	List(ctx context.Context, userID int, f BrewFilter) ([]models.Brew, error)
	Get(ctx context.Context, userID, id int) (models.Brew, error)
	UpdateEvaluation(ctx context.Context, userID, id int, p EvaluationParams) (models.Brew, error)
	SetPhoto(ctx context.Context, userID, id int, path string) error
	SetFavorite(ctx context.Context, userID, id int, favorite bool) error
	Delete(ctx context.Context, userID, id int) error
}

// Vision reads coffee bag metadata out of photos.
type Vision interface {
	AnalyzeBag(ctx context.Context, image []byte, mimeType string) (ai.BagInfo, error)
}

// Stats exposes the admin panel aggregates.
type Stats interface {
	Usage(ctx context.Context) (models.UsageStats, error)
	BrewsPerDay(ctx context.Context, days int) ([]models.DayCount, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Equipment
	Coffee
	Recipes
	Brews
	Vision
	Stats
}

// NewService wires the repository layer into concrete services. The
// vision client may be nil when no AI key is configured; the endpoint
// then reports itself unavailable instead of failing at startup.
func NewService(repos *repository.Repository, visionClient *ai.Client, signingKey string) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, signingKey),
		Equipment:     NewEquipmentService(repos.Equipment),
		Coffee:        NewCoffeeService(repos.Coffee),
		Recipes:       NewRecipeService(repos.Recipes),
		Brews:         NewBrewService(repos.Brews, repos.Recipes),
		Vision:        NewVisionService(visionClient),
		Stats:         NewStatsService(repos.Stats),
	}
}
