package handlers

import (
	"context"
	"net/http"

	"brewlog/internal/ai"
	"brewlog/internal/brewing"
	"brewlog/internal/models"
	"brewlog/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	guestToken    string
	guestErr      error
	migrateToken  string
	migrateErr    error
	parseClaims   service.TokenClaims
	parseErr      error

	lastSignUpUsername  string
	lastMigrateUserID   int
	lastMigrateUsername string
	lastParseToken      string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) CreateGuest() (string, error) {
	return m.guestToken, m.guestErr
}
func (m *mockAuth) MigrateGuest(userID int, username, password string) (string, error) {
	m.lastMigrateUserID = userID
	m.lastMigrateUsername = username
	return m.migrateToken, m.migrateErr
}
func (m *mockAuth) ParseToken(token string) (service.TokenClaims, error) {
	m.lastParseToken = token
	return m.parseClaims, m.parseErr
}

type mockBrews struct {
	selectDraft  brewing.Draft
	selectErr    error
	editDraft    brewing.Draft
	editErr      error
	resumeDraft  brewing.Draft
	resumeErr    error
	finalBrew    models.Brew
	finalDraft   brewing.Draft
	finalErrs    []brewing.FieldError
	finalErr     error
	listResp     []models.Brew
	listErr      error
	getResp      models.Brew
	getErr       error
	evalResp     models.Brew
	evalErr      error
	photoErr     error
	favoriteErr  error
	deleteErr    error

	lastSelectUser   int
	lastSelectRecipe int
	lastEdit         brewing.Edit
	lastFilter       service.BrewFilter
	lastEval         service.EvaluationParams
	lastPhotoPath    string
	lastFavorite     bool
	deleteCalls      int
}

func (m *mockBrews) SelectRecipe(_ context.Context, userID int, _ brewing.Draft, recipeID int) (brewing.Draft, error) {
	m.lastSelectUser = userID
	m.lastSelectRecipe = recipeID
	return m.selectDraft, m.selectErr
}
func (m *mockBrews) EditDraft(_ brewing.Draft, e brewing.Edit) (brewing.Draft, error) {
	m.lastEdit = e
	return m.editDraft, m.editErr
}
func (m *mockBrews) ResumeDraft(_ brewing.Draft, _ brewing.CarryOver) (brewing.Draft, error) {
	return m.resumeDraft, m.resumeErr
}
func (m *mockBrews) FinalizeDraft(_ context.Context, _ int, _ brewing.Draft) (models.Brew, brewing.Draft, []brewing.FieldError, error) {
	return m.finalBrew, m.finalDraft, m.finalErrs, m.finalErr
}
func (m *mockBrews) List(_ context.Context, _ int, f service.BrewFilter) ([]models.Brew, error) {
	m.lastFilter = f
	return m.listResp, m.listErr
}
func (m *mockBrews) Get(_ context.Context, _, _ int) (models.Brew, error) {
	return m.getResp, m.getErr
}
func (m *mockBrews) UpdateEvaluation(_ context.Context, _, _ int, p service.EvaluationParams) (models.Brew, error) {
	m.lastEval = p
	return m.evalResp, m.evalErr
}
func (m *mockBrews) SetPhoto(_ context.Context, _, _ int, path string) error {
	m.lastPhotoPath = path
	return m.photoErr
}
func (m *mockBrews) SetFavorite(_ context.Context, _, _ int, favorite bool) error {
	m.lastFavorite = favorite
	return m.favoriteErr
}
func (m *mockBrews) Delete(_ context.Context, _, _ int) error {
	m.deleteCalls++
	return m.deleteErr
}

type mockCoffee struct {
	createBeanResp  models.CoffeeBean
	createBeanErr   error
	listBeansResp   []models.CoffeeBean
	listBeansErr    error
	createBatchResp models.CoffeeBatch
	createBatchErr  error
	listBatchesResp []models.CoffeeBatch
	listBatchesErr  error
	consumeResp     float64
	consumeErr      error

	lastConsumeID     int
	lastConsumeAmount float64
}

func (m *mockCoffee) CreateBean(_ context.Context, _ int, _ models.CoffeeBean) (models.CoffeeBean, error) {
	return m.createBeanResp, m.createBeanErr
}
func (m *mockCoffee) ListBeans(_ context.Context, _ int) ([]models.CoffeeBean, error) {
	return m.listBeansResp, m.listBeansErr
}
func (m *mockCoffee) UpdateBean(_ context.Context, _ int, _ models.CoffeeBean) error { return nil }
func (m *mockCoffee) DeleteBean(_ context.Context, _, _ int) error                   { return nil }
func (m *mockCoffee) CreateBatch(_ context.Context, _ int, _ models.CoffeeBatch) (models.CoffeeBatch, error) {
	return m.createBatchResp, m.createBatchErr
}
func (m *mockCoffee) ListBatches(_ context.Context, _, _ int) ([]models.CoffeeBatch, error) {
	return m.listBatchesResp, m.listBatchesErr
}
func (m *mockCoffee) UpdateBatch(_ context.Context, _ int, _ models.CoffeeBatch) error { return nil }
func (m *mockCoffee) DeleteBatch(_ context.Context, _, _ int) error                    { return nil }
func (m *mockCoffee) ConsumeBatch(_ context.Context, _, id int, amountG float64) (float64, error) {
	m.lastConsumeID = id
	m.lastConsumeAmount = amountG
	return m.consumeResp, m.consumeErr
}

type mockVision struct {
	resp ai.BagInfo
	err  error

	lastMimeType string
	lastImageLen int
}

func (m *mockVision) AnalyzeBag(_ context.Context, image []byte, mimeType string) (ai.BagInfo, error) {
	m.lastImageLen = len(image)
	m.lastMimeType = mimeType
	return m.resp, m.err
}

type mockStats struct {
	usage    models.UsageStats
	usageErr error
	days     []models.DayCount
	daysErr  error

	lastDays int
}

func (m *mockStats) Usage(_ context.Context) (models.UsageStats, error) {
	return m.usage, m.usageErr
}
func (m *mockStats) BrewsPerDay(_ context.Context, days int) ([]models.DayCount, error) {
	m.lastDays = days
	return m.days, m.daysErr
}

// ---- Shared Test Helpers ----

// authOK is a mockAuth accepting any token as user 1.
func authOK(claims service.TokenClaims) *mockAuth {
	return &mockAuth{parseClaims: claims}
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, "")
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
