// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/core/config"
	"github.com/expense-tracker/core/internal/infra/db"
	"github.com/expense-tracker/core/internal/infra/dependency"
	"github.com/expense-tracker/core/test/integration/mock"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	engine       *gin.Engine
	response     *http.Response
	responseBody []byte

	// Doubles
	relay *mock.Relay

	// Infra
	database *db.Database
	cfg      *config.Config
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		// Disables auth rate limiting for the suite
		_ = os.Setenv("ENV", "test")
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc := &TestContext{relay: mock.NewRelay()}
		tc.relay.Start()

		tc.cfg = config.Load()
		tc.cfg.Database.Path = ":memory:"
		tc.cfg.Remote.BaseURL = tc.relay.URL()
		tc.cfg.Redis.Enabled = false
		tc.cfg.Email.WorkerEnabled = false

		database, err := db.NewSQLiteConnection(&tc.cfg.Database)
		if err != nil {
			return ctx, fmt.Errorf("failed to open local store: %w", err)
		}
		if err := database.Migrate(); err != nil {
			return ctx, fmt.Errorf("failed to migrate local store: %w", err)
		}
		tc.database = database

		injector := dependency.NewInjector(tc.cfg, database.DB())
		tc.engine = injector.Router.Setup("test")
		tc.server = httptest.NewServer(tc.engine)

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil {
			if tc.server != nil {
				tc.server.Close()
			}
			if tc.relay != nil {
				tc.relay.Close()
			}
			if tc.database != nil {
				_ = tc.database.Close()
			}
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerRelaySteps(ctx)
	registerResponseSteps(ctx)
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I sign in with token "([^"]*)"$`, iSignInWithToken)
}

// registerRelaySteps registers steps driving the relay double.
func registerRelaySteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the relay recognizes the token "([^"]*)" for user "([^"]*)" with email "([^"]*)"$`, theRelayRecognizesTheToken)
	ctx.Step(`^the relay holds these transactions:$`, theRelayHoldsTheseTransactions)
	ctx.Step(`^the relay record counters are reset$`, theRelayRecordCountersAreReset)
	ctx.Step(`^the relay should hold (\d+) transactions?$`, theRelayShouldHoldTransactions)
	ctx.Step(`^the relay should not hold transaction (\d+)$`, theRelayShouldNotHoldTransaction)
	ctx.Step(`^the relay should have received (\d+) record-level calls$`, theRelayShouldHaveReceivedRecordLevelCalls)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the local store should hold (\d+) live transactions?$`, theLocalStoreShouldHoldLiveTransactions)
	ctx.Step(`^every listed transaction should be in category (-?\d+)$`, everyListedTransactionShouldBeInCategory)
}

// Step implementations

func (tc *TestContext) doRequest(method, endpoint string, body io.Reader) error {
	req, err := http.NewRequest(method, tc.server.URL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.doRequest(method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.doRequest(method, endpoint, bytes.NewBufferString(body.Content))
}

func iSignInWithToken(ctx context.Context, token string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	payload := fmt.Sprintf(`{"idToken": %q}`, token)
	if err := tc.doRequest(http.MethodPost, "/api/v1/auth/signin", bytes.NewBufferString(payload)); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("sign-in failed with status %d: %s", tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theRelayRecognizesTheToken(ctx context.Context, token, userID, email string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.relay.RegisterToken(token, userID, email)
	return nil
}

func theRelayHoldsTheseTransactions(ctx context.Context, table *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if len(table.Rows) < 2 {
		return fmt.Errorf("expected a header row and at least one record")
	}

	header := table.Rows[0]
	for _, row := range table.Rows[1:] {
		record := make(map[string]any, len(header.Cells))
		for i, cell := range header.Cells {
			record[cell.Value] = parseCell(cell.Value, row.Cells[i].Value)
		}
		tc.relay.SeedTransaction(record)
	}
	return nil
}

// parseCell converts a table cell to the JSON type the wire format uses.
func parseCell(column, value string) any {
	switch column {
	case "id", "categoryId", "date", "updatedAt":
		n, _ := strconv.ParseInt(value, 10, 64)
		return float64(n)
	case "amount":
		f, _ := strconv.ParseFloat(value, 64)
		return f
	default:
		return value
	}
}

func theRelayRecordCountersAreReset(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.relay.ResetCounters()
	return nil
}

func theRelayShouldHoldTransactions(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if got := tc.relay.TransactionCount(); got != expected {
		return fmt.Errorf("relay holds %d transactions, want %d", got, expected)
	}
	return nil
}

func theRelayShouldNotHoldTransaction(ctx context.Context, id int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.relay.HasTransaction(int64(id)) {
		return fmt.Errorf("relay still holds transaction %d", id)
	}
	return nil
}

func theRelayShouldHaveReceivedRecordLevelCalls(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if got := tc.relay.RecordCalls(); got != expected {
		return fmt.Errorf("relay received %d record-level calls, want %d", got, expected)
	}
	return nil
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var data map[string]any
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}

	value, ok := data[field]
	if !ok {
		return fmt.Errorf("field '%s' not found in response. Body: %s", field, string(tc.responseBody))
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

// listTransactions fetches the live listing through the API.
func (tc *TestContext) listTransactions() ([]map[string]any, error) {
	if err := tc.doRequest(http.MethodGet, "/api/v1/transactions", nil); err != nil {
		return nil, err
	}
	var data struct {
		Transactions []map[string]any `json:"transactions"`
	}
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse listing: %w", err)
	}
	return data.Transactions, nil
}

func theLocalStoreShouldHoldLiveTransactions(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	transactions, err := tc.listTransactions()
	if err != nil {
		return err
	}
	if len(transactions) != expected {
		return fmt.Errorf("local store holds %d live transactions, want %d", len(transactions), expected)
	}
	return nil
}

func everyListedTransactionShouldBeInCategory(ctx context.Context, categoryID int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	transactions, err := tc.listTransactions()
	if err != nil {
		return err
	}
	for _, txn := range transactions {
		got, _ := txn["categoryId"].(float64)
		if int(got) != categoryID {
			return fmt.Errorf("transaction %v is in category %d, want %d", txn["id"], int(got), categoryID)
		}
	}
	return nil
}
