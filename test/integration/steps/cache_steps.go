// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/bookkeeping/backend/test/integration/mock"
)

// registerCacheSteps registers report cache assertions.
func registerCacheSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the report cache should hold (\d+) entr(?:y|ies) for my company$`, theReportCacheShouldHoldEntries)
}

func theReportCacheShouldHoldEntries(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	pattern := fmt.Sprintf("%s:%s:*", tc.cfg.Report.CacheKeyPrefix, tc.companyID)
	count, err := mock.CountKeys(tc.redis, pattern)
	if err != nil {
		return fmt.Errorf("failed to count cache keys: %w", err)
	}
	if count != expected {
		return fmt.Errorf("expected %d cached reports, got %d", expected, count)
	}
	return nil
}
