package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/umay/internal/config"
	"github.com/MKhiriev/umay/internal/filter"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/report"
	"github.com/MKhiriev/umay/internal/service"
	"github.com/MKhiriev/umay/internal/store"
	"github.com/MKhiriev/umay/models"
)

// ─────────────────────────────────────────────
// Service mocks: each method delegates to an overridable func field.
// ─────────────────────────────────────────────

type mockAuthService struct {
	registerFn      func(ctx context.Context, account models.Account) (models.Account, error)
	loginFn         func(ctx context.Context, login, password string) (models.Account, error)
	createTokenFn   func(ctx context.Context, account models.Account) (models.Token, error)
	parseTokenFn    func(ctx context.Context, tokenString string) (models.Token, error)
	getAccountFn    func(ctx context.Context, id int64) (models.Account, error)
	verifyEmailFn   func(ctx context.Context, token string) (models.Account, error)
	requestResetFn  func(ctx context.Context, req models.OTPRequest) (models.OTPResponse, error)
	resetPasswordFn func(ctx context.Context, req models.PasswordResetRequest) error
}

func (m *mockAuthService) Register(ctx context.Context, account models.Account) (models.Account, error) {
	return m.registerFn(ctx, account)
}

func (m *mockAuthService) Login(ctx context.Context, login, password string) (models.Account, error) {
	return m.loginFn(ctx, login, password)
}

func (m *mockAuthService) CreateToken(ctx context.Context, account models.Account) (models.Token, error) {
	return m.createTokenFn(ctx, account)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

func (m *mockAuthService) GetAccount(ctx context.Context, id int64) (models.Account, error) {
	return m.getAccountFn(ctx, id)
}

func (m *mockAuthService) VerifyEmail(ctx context.Context, token string) (models.Account, error) {
	return m.verifyEmailFn(ctx, token)
}

func (m *mockAuthService) RequestPasswordReset(ctx context.Context, req models.OTPRequest) (models.OTPResponse, error) {
	return m.requestResetFn(ctx, req)
}

func (m *mockAuthService) ResetPassword(ctx context.Context, req models.PasswordResetRequest) error {
	return m.resetPasswordFn(ctx, req)
}

func (m *mockAuthService) SeedSuperAdmin(ctx context.Context) (models.Account, bool, error) {
	return models.Account{}, false, nil
}

type mockRecordService struct {
	searchFn        func(ctx context.Context, actor models.Account, criteria filter.Criteria) ([]models.BirthRecord, error)
	createFn        func(ctx context.Context, actor models.Account, record models.BirthRecord) (models.BirthRecord, error)
	getFn           func(ctx context.Context, actor models.Account, id int64) (models.BirthRecord, error)
	updateFn        func(ctx context.Context, actor models.Account, id int64, record models.BirthRecord) (models.BirthRecord, error)
	deleteFn        func(ctx context.Context, actor models.Account, id int64) error
	filterOptionsFn func(ctx context.Context, actor models.Account) (models.FilterOptions, error)
	dashboardFn     func(ctx context.Context, actor models.Account) (service.Dashboard, error)
	analyticsFn     func(ctx context.Context, actor models.Account, criteria filter.Criteria) (report.Statistics, error)
	exportFn        func(ctx context.Context, actor models.Account, criteria filter.Criteria, format report.Format) (service.ExportFile, error)
}

func (m *mockRecordService) Search(ctx context.Context, actor models.Account, criteria filter.Criteria) ([]models.BirthRecord, error) {
	return m.searchFn(ctx, actor, criteria)
}

func (m *mockRecordService) Create(ctx context.Context, actor models.Account, record models.BirthRecord) (models.BirthRecord, error) {
	return m.createFn(ctx, actor, record)
}

func (m *mockRecordService) Get(ctx context.Context, actor models.Account, id int64) (models.BirthRecord, error) {
	return m.getFn(ctx, actor, id)
}

func (m *mockRecordService) Update(ctx context.Context, actor models.Account, id int64, record models.BirthRecord) (models.BirthRecord, error) {
	return m.updateFn(ctx, actor, id, record)
}

func (m *mockRecordService) Delete(ctx context.Context, actor models.Account, id int64) error {
	return m.deleteFn(ctx, actor, id)
}

func (m *mockRecordService) FilterOptions(ctx context.Context, actor models.Account) (models.FilterOptions, error) {
	return m.filterOptionsFn(ctx, actor)
}

func (m *mockRecordService) Dashboard(ctx context.Context, actor models.Account) (service.Dashboard, error) {
	return m.dashboardFn(ctx, actor)
}

func (m *mockRecordService) Analytics(ctx context.Context, actor models.Account, criteria filter.Criteria) (report.Statistics, error) {
	return m.analyticsFn(ctx, actor, criteria)
}

func (m *mockRecordService) Export(ctx context.Context, actor models.Account, criteria filter.Criteria, format report.Format) (service.ExportFile, error) {
	return m.exportFn(ctx, actor, criteria, format)
}

type mockContentService struct {
	listPublishedFn func(ctx context.Context, feed models.Feed, category string, limit uint64) ([]models.Article, error)
	viewPublishedFn func(ctx context.Context, feed models.Feed, id int64) (models.Article, error)
	listFn          func(ctx context.Context, actor models.Account, feed models.Feed, category string) ([]models.Article, error)
	createFn        func(ctx context.Context, actor models.Account, article models.Article) (models.Article, error)
	updateFn        func(ctx context.Context, actor models.Account, article models.Article) (models.Article, error)
	deleteFn        func(ctx context.Context, actor models.Account, feed models.Feed, id int64) error
	generateFn      func(ctx context.Context, actor models.Account, feed models.Feed, req models.GenerateRequest) (models.Article, error)
	approveFn       func(ctx context.Context, actor models.Account, feed models.Feed, id int64) (models.Article, error)
	rejectFn        func(ctx context.Context, actor models.Account, feed models.Feed, id int64) error
}

func (m *mockContentService) ListPublished(ctx context.Context, feed models.Feed, category string, limit uint64) ([]models.Article, error) {
	return m.listPublishedFn(ctx, feed, category, limit)
}

func (m *mockContentService) ViewPublished(ctx context.Context, feed models.Feed, id int64) (models.Article, error) {
	return m.viewPublishedFn(ctx, feed, id)
}

func (m *mockContentService) List(ctx context.Context, actor models.Account, feed models.Feed, category string) ([]models.Article, error) {
	return m.listFn(ctx, actor, feed, category)
}

func (m *mockContentService) Create(ctx context.Context, actor models.Account, article models.Article) (models.Article, error) {
	return m.createFn(ctx, actor, article)
}

func (m *mockContentService) Update(ctx context.Context, actor models.Account, article models.Article) (models.Article, error) {
	return m.updateFn(ctx, actor, article)
}

func (m *mockContentService) Delete(ctx context.Context, actor models.Account, feed models.Feed, id int64) error {
	return m.deleteFn(ctx, actor, feed, id)
}

func (m *mockContentService) Generate(ctx context.Context, actor models.Account, feed models.Feed, req models.GenerateRequest) (models.Article, error) {
	return m.generateFn(ctx, actor, feed, req)
}

func (m *mockContentService) Approve(ctx context.Context, actor models.Account, feed models.Feed, id int64) (models.Article, error) {
	return m.approveFn(ctx, actor, feed, id)
}

func (m *mockContentService) Reject(ctx context.Context, actor models.Account, feed models.Feed, id int64) error {
	return m.rejectFn(ctx, actor, feed, id)
}

type mockMediaService struct {
	uploadFn func(ctx context.Context, actor models.Account, upload service.MediaUpload) (models.MediaFile, error)
}

func (m *mockMediaService) Upload(ctx context.Context, actor models.Account, upload service.MediaUpload) (models.MediaFile, error) {
	return m.uploadFn(ctx, actor, upload)
}

type mockDirectoryService struct {
	cities []config.City
}

func (m *mockDirectoryService) Cities(_ context.Context) []config.City {
	return m.cities
}

func (m *mockDirectoryService) Institutions(_ context.Context, city string) ([]string, error) {
	for _, c := range m.cities {
		if c.Name == city {
			return c.Institutions, nil
		}
	}
	return nil, service.ErrUnknownCity
}

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const testBearer = "Bearer test-token"

var (
	testMidwife = models.Account{ID: 1, Login: "aigul", FullName: "Айгуль Серикова", Role: models.RoleMidwife}
	testAdmin   = models.Account{ID: 2, Login: "admin", FullName: "Админ", Role: models.RoleAdmin}
)

// authAs returns an AuthService mock that accepts testBearer for account.
func authAs(account models.Account) *mockAuthService {
	return &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{RegisteredClaims: jwt.RegisteredClaims{Subject: strconv.FormatInt(account.ID, 10)}}, nil
		},
		getAccountFn: func(_ context.Context, id int64) (models.Account, error) {
			if id != account.ID {
				return models.Account{}, store.ErrNoAccountWasFound
			}
			return account, nil
		},
	}
}

// newTestServices fills every service with a mock so that the router can
// be built. Tests override the fields they exercise.
func newTestServices() *service.Services {
	return &service.Services{
		AuthService:      authAs(testMidwife),
		RecordService:    &mockRecordService{},
		ContentService:   &mockContentService{},
		MediaService:     &mockMediaService{},
		DirectoryService: &mockDirectoryService{},
		AppInfoService:   &mockAppInfoService{version: "test-version"},
	}
}

func newTestRouter(services *service.Services, cfg Config) http.Handler {
	return NewHandler(services, cfg, logger.Nop()).Init()
}

// serve runs req through a router built from services.
func serve(t *testing.T, services *service.Services, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	newTestRouter(services, Config{}).ServeHTTP(rec, req)
	return rec
}
