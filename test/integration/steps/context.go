//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/infra/dependency"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
	"github.com/expense-tracker/backend/test/integration/mock"
)

// defaultRateLimit keeps ordinary scenarios clear of the write limiter.
const defaultRateLimit = 1000

type testContext struct {
	uri      string
	headers  map[string]string
	client   *http.Client
	response *response
	db       *mock.Db
	redis    *mock.Redis
	timeMock *mock.Time
	server   *httptest.Server
	injector *dependency.Injector

	rateLimit     int
	lastExpenseID int64
}

type response struct {
	status  int
	headers http.Header
	raw     []byte
	body    any
}

// InitializeTestSuite sets up resources before any scenario runs.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers every step definition.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client:   &http.Client{Timeout: 10 * time.Second},
		timeMock: mock.NewTime(),
		db: mock.NewDb(map[string]any{
			"categories": &model.CategoryModel{},
			"expenses":   &model.ExpenseModel{},
			"budgets":    &model.BudgetModel{},
		}),
		redis: mock.NewRedis(),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		test.stopServer()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^today is "([^"]*)"$`, test.todayIs)
	ctx.Given(`^the write rate limit is (\d+) requests? per minute$`, test.theWriteRateLimitIs)

	// Ledger setup steps
	ctx.Given(`^the following expenses exist:$`, test.theFollowingExpensesExist)
	ctx.Given(`^a monthly budget of "([^"]*)" exists for "([^"]*)"$`, test.aMonthlyBudgetExistsFor)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with CSV:$`, test.iSendARequestToWithCSV)
	ctx.When(`^I send (\d+) "([^"]*)" requests to "([^"]*)" with body:$`, test.iSendRequestsToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should not exist$`, test.theResponseFieldShouldNotExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response header "([^"]*)" should be "([^"]*)"$`, test.theResponseHeaderShouldBe)
	ctx.Then(`^the response body should contain the line "([^"]*)"$`, test.theResponseBodyShouldContainTheLine)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.lastExpenseID = 0
	t.rateLimit = defaultRateLimit
	t.timeMock.SetCurrentTime(time.Now())

	if err := t.db.ClearDB(); err != nil {
		return fmt.Errorf("failed to clear database: %w", err)
	}
	if err := t.redis.Clear(); err != nil {
		return fmt.Errorf("failed to clear redis: %w", err)
	}
	return nil
}

// startServer wires the application over the mocks. The injector is rebuilt
// whenever the configuration of a scenario changes.
func (t *testContext) startServer() error {
	t.stopServer()

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Redis.Enabled = true
	cfg.RateLimit.MaxRequests = t.rateLimit
	cfg.RateLimit.Window = time.Minute

	t.injector = dependency.NewInjector(cfg, t.db.DbConn, t.redis.Client, dependency.WithClock(t.timeMock.Now))
	if _, err := t.injector.UseCases.SeedDefaultCategories.Execute(context.Background()); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	t.server = httptest.NewServer(t.injector.Router.Setup(cfg.Server.Environment))
	t.uri = t.server.URL
	return nil
}

func (t *testContext) stopServer() {
	if t.server != nil {
		t.server.Close()
		t.server = nil
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	return t.startServer()
}

func (t *testContext) todayIs(date string) error {
	today, err := time.Parse("2006-01-02", date)
	if err != nil {
		return err
	}
	t.timeMock.SetCurrentTime(today.Add(12 * time.Hour))
	return nil
}

func (t *testContext) theWriteRateLimitIs(limit int) error {
	t.rateLimit = limit
	return t.startServer()
}
