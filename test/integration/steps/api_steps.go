// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"

	"github.com/bookkeeping/backend/internal/integration/adapters"
)

var placeholderPattern = regexp.MustCompile(`\{(article|budget|deal|department):([^}]+)\}`)

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
	ctx.Step(`^I am authenticated for company "([^"]*)"$`, iAmAuthenticatedForCompany)
	ctx.Step(`^I am authenticated without a company$`, iAmAuthenticatedWithoutACompany)
	ctx.Step(`^the current time is "([^"]*)"$`, theCurrentTimeIs)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response should not contain "([^"]*)"$`, theResponseShouldNotContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, theResponseFieldShouldHaveItems)
	ctx.Step(`^the response should match json:$`, theResponseShouldMatchJSON)
}

// Step implementations

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	resolved, err := tc.resolvePlaceholders(endpoint)
	if err != nil {
		return ctx, err
	}

	req, err := http.NewRequest(method, tc.server.URL+resolved, nil)
	if err != nil {
		return ctx, fmt.Errorf("failed to create request: %w", err)
	}

	// Add headers
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}

	// Add auth token if present
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return ctx, fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return ctx, fmt.Errorf("failed to read response body: %w", err)
	}

	return SetTestContext(ctx, tc), nil
}

// resolvePlaceholders replaces {article:Name}-style references with the seeded ids.
func (tc *TestContext) resolvePlaceholders(endpoint string) (string, error) {
	var missing error
	resolved := placeholderPattern.ReplaceAllStringFunc(endpoint, func(match string) string {
		parts := placeholderPattern.FindStringSubmatch(match)
		var ids map[string]uuid.UUID
		switch parts[1] {
		case "article":
			ids = tc.articles
		case "budget":
			ids = tc.budgets
		case "deal":
			ids = tc.deals
		case "department":
			ids = tc.departments
		}
		id, ok := ids[parts[2]]
		if !ok {
			missing = fmt.Errorf("unknown %s %q", parts[1], parts[2])
			return match
		}
		return id.String()
	})
	return resolved, missing
}

func iSetHeaderTo(ctx context.Context, header, value string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	tc.requestHeaders[header] = value
	return SetTestContext(ctx, tc), nil
}

func iAmAuthenticatedForCompany(ctx context.Context, company string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	companyID, err := uuid.Parse(company)
	if err != nil {
		return ctx, fmt.Errorf("invalid company id: %w", err)
	}

	token, err := adapters.IssueAccessToken(tc.cfg.JWT.Secret, uuid.New(), companyID, time.Hour)
	if err != nil {
		return ctx, fmt.Errorf("failed to issue token: %w", err)
	}

	tc.companyID = companyID
	tc.accessToken = token
	return SetTestContext(ctx, tc), nil
}

func iAmAuthenticatedWithoutACompany(ctx context.Context) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	token, err := adapters.IssueAccessToken(tc.cfg.JWT.Secret, uuid.New(), uuid.Nil, time.Hour)
	if err != nil {
		return ctx, fmt.Errorf("failed to issue token: %w", err)
	}

	tc.accessToken = token
	return SetTestContext(ctx, tc), nil
}

func theCurrentTimeIs(ctx context.Context, value string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	tc.clock.SetCurrentTime(now)
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

func theResponseShouldNotContain(ctx context.Context, unexpected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if strings.Contains(string(tc.responseBody), unexpected) {
		return fmt.Errorf("response contains '%s'. Body: %s", unexpected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	value, err := tc.responseField(field)
	if err != nil {
		return err
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldHaveItems(ctx context.Context, field string, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	value, err := tc.responseField(field)
	if err != nil {
		return err
	}

	items, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("field '%s' is not an array", field)
	}
	if len(items) != expected {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, expected, len(items))
	}
	return nil
}

// responseField walks a dotted path such as "activities.0.netCashflow". A "$" path is the whole body.
func (tc *TestContext) responseField(path string) (interface{}, error) {
	var current interface{}
	if err := json.Unmarshal(tc.responseBody, &current); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}
	if path == "$" {
		return current, nil
	}

	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]interface{}:
			value, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field '%s' not found in response", path)
			}
			current = value
		case []interface{}:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("index '%s' out of range in '%s'", part, path)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("field '%s' not found in response", path)
		}
	}
	return current, nil
}

func theResponseShouldMatchJSON(ctx context.Context, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var expected, actual interface{}

	if err := json.Unmarshal([]byte(body.Content), &expected); err != nil {
		return fmt.Errorf("failed to parse expected JSON: %w", err)
	}

	if err := json.Unmarshal(tc.responseBody, &actual); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}

	expectedJSON, _ := json.Marshal(expected)
	actualJSON, _ := json.Marshal(actual)

	if string(expectedJSON) != string(actualJSON) {
		return fmt.Errorf("expected JSON:\n%s\nactual JSON:\n%s", string(expectedJSON), string(actualJSON))
	}

	return nil
}
