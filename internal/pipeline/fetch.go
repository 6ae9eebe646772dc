package pipeline

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/noktah-inovasi/contentops/internal/model"
	"github.com/noktah-inovasi/contentops/pkg/sheets"
)

// DelayFunc produces the pause inserted between consecutive document reads.
type DelayFunc func() time.Duration

// UniformDelay returns a DelayFunc drawing uniformly from [min, max].
func UniformDelay(min, max time.Duration) DelayFunc {
	if max < min {
		max = min
	}
	return func() time.Duration {
		if max == min {
			return min
		}
		return min + time.Duration(rand.Int63n(int64(max-min)+1))
	}
}

// FetchPlans reads the content rows of every located document. Matches without
// a document are passed through as plans carrying the skip or error reason;
// a failed read marks that client's plan and moves on. Between consecutive
// reads (not after the last) the delay from delayFn is applied, so the
// document service never sees a request burst.
func FetchPlans(ctx context.Context, client sheets.Client, matches []model.DocumentMatch, sheetName string, delayFn DelayFunc) []model.ClientPlan {
	var fetchable []model.DocumentMatch
	plans := make([]model.ClientPlan, 0, len(matches))

	for _, m := range matches {
		if m.Found() {
			fetchable = append(fetchable, m)
			continue
		}
		reason := m.Error
		if reason == "" {
			reason = m.SkipReason
		}
		if reason == "" {
			reason = "no content plan document found"
		}
		plans = append(plans, model.ClientPlan{
			Number:     m.Number,
			ClientName: m.ClientName,
			Error:      reason,
		})
	}

	start := time.Now()
	var totalDelay time.Duration
	for i, m := range fetchable {
		plan := model.ClientPlan{
			Number:     m.Number,
			ClientName: m.ClientName,
			DocumentID: m.DocumentID,
		}

		table, err := client.ReadTable(ctx, m.DocumentID, sheetName, sheets.ReadOptions{})
		if err != nil {
			plan.Error = err.Error()
			zap.L().Error("fetch: read failed",
				zap.String("client", m.ClientName),
				zap.String("document_id", m.DocumentID),
				zap.Error(err),
			)
		} else {
			for _, row := range table.Maps() {
				plan.Rows = append(plan.Rows, model.ContentRow(row))
			}
			plan.FetchedAt = time.Now().UTC()
			zap.L().Info("fetch: content plan read",
				zap.String("client", m.ClientName),
				zap.Int("rows", len(plan.Rows)),
			)
		}
		plans = append(plans, plan)

		if i < len(fetchable)-1 && delayFn != nil {
			d := delayFn()
			totalDelay += d
			if !sleep(ctx, d) {
				zap.L().Warn("fetch: canceled during inter-read delay")
				break
			}
		}
	}

	if n := len(fetchable); n > 1 {
		zap.L().Info("fetch: stage complete",
			zap.Int("documents", n),
			zap.Duration("elapsed", time.Since(start)),
			zap.Duration("avg_delay", totalDelay/time.Duration(n-1)),
		)
	}
	return plans
}

// sleep waits for d or until ctx is canceled, reporting whether the full
// delay elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
