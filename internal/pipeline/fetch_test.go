package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/noktah-inovasi/contentops/internal/model"
	"github.com/noktah-inovasi/contentops/pkg/sheets"
)

func noDelay() time.Duration { return 0 }

func planTable() *sheets.Table {
	return &sheets.Table{
		Header: []string{"Topik", "Tanggal", "Bentuk"},
		Rows: [][]string{
			{"Launch post", "2025-09-10", "Feed"},
			{"Teaser reel", "2025-09-12", "Reels"},
		},
	}
}

func TestFetchPlans(t *testing.T) {
	matches := []model.DocumentMatch{
		{Number: 1, ClientName: "Acme", DocumentID: "doc-1"},
		{Number: 2, ClientName: "Beta", DocumentID: "doc-2"},
	}

	ms := new(mockSheetsClient)
	ms.On("ReadTable", mock.Anything, "doc-1", "Sheet1", sheets.ReadOptions{}).Return(planTable(), nil)
	ms.On("ReadTable", mock.Anything, "doc-2", "Sheet1", sheets.ReadOptions{}).Return(&sheets.Table{}, nil)

	plans := FetchPlans(context.Background(), ms, matches, "Sheet1", noDelay)
	require.Len(t, plans, 2)

	assert.Equal(t, "Acme", plans[0].ClientName)
	assert.Equal(t, "doc-1", plans[0].DocumentID)
	require.Len(t, plans[0].Rows, 2)
	assert.Equal(t, "Launch post", plans[0].Rows[0]["Topik"])
	assert.False(t, plans[0].FetchedAt.IsZero())

	assert.Empty(t, plans[1].Rows)
	assert.Empty(t, plans[1].Error)
}

func TestFetchPlansPassesThroughUnfetchable(t *testing.T) {
	matches := []model.DocumentMatch{
		{Number: 1, ClientName: "NoDoc"},
		{Number: 2, ClientName: "Skipped", Skipped: true, SkipReason: "missing client name or folder ref"},
		{Number: 3, ClientName: "Failed", Error: "drive: search failed"},
		{Number: 4, ClientName: "Acme", DocumentID: "doc-1"},
	}

	ms := new(mockSheetsClient)
	ms.On("ReadTable", mock.Anything, "doc-1", "Sheet1", sheets.ReadOptions{}).Return(planTable(), nil)

	plans := FetchPlans(context.Background(), ms, matches, "Sheet1", noDelay)
	require.Len(t, plans, 4, "every client appears in the output")

	assert.Equal(t, "no content plan document found", plans[0].Error)
	assert.Equal(t, "missing client name or folder ref", plans[1].Error)
	assert.Equal(t, "drive: search failed", plans[2].Error)
	assert.Empty(t, plans[3].Error)
	ms.AssertNumberOfCalls(t, "ReadTable", 1)
}

func TestFetchPlansReadFailureIsolated(t *testing.T) {
	matches := []model.DocumentMatch{
		{Number: 1, ClientName: "Acme", DocumentID: "doc-1"},
		{Number: 2, ClientName: "Beta", DocumentID: "doc-2"},
	}

	ms := new(mockSheetsClient)
	ms.On("ReadTable", mock.Anything, "doc-1", "Sheet1", sheets.ReadOptions{}).Return(nil, assert.AnError)
	ms.On("ReadTable", mock.Anything, "doc-2", "Sheet1", sheets.ReadOptions{}).Return(planTable(), nil)

	plans := FetchPlans(context.Background(), ms, matches, "Sheet1", noDelay)
	require.Len(t, plans, 2)
	assert.NotEmpty(t, plans[0].Error)
	assert.Len(t, plans[1].Rows, 2)
}

func TestFetchPlansDelayBetweenReadsOnly(t *testing.T) {
	matches := []model.DocumentMatch{
		{Number: 1, ClientName: "A", DocumentID: "doc-1"},
		{Number: 2, ClientName: "B", DocumentID: "doc-2"},
		{Number: 3, ClientName: "C", DocumentID: "doc-3"},
	}

	ms := new(mockSheetsClient)
	for _, id := range []string{"doc-1", "doc-2", "doc-3"} {
		ms.On("ReadTable", mock.Anything, id, "Sheet1", sheets.ReadOptions{}).Return(planTable(), nil)
	}

	delays := 0
	countingDelay := func() time.Duration {
		delays++
		return 0
	}

	FetchPlans(context.Background(), ms, matches, "Sheet1", countingDelay)
	assert.Equal(t, 2, delays, "no delay after the last read")
}

func TestFetchPlansCanceledDuringDelay(t *testing.T) {
	matches := []model.DocumentMatch{
		{Number: 1, ClientName: "A", DocumentID: "doc-1"},
		{Number: 2, ClientName: "B", DocumentID: "doc-2"},
	}

	ms := new(mockSheetsClient)
	ms.On("ReadTable", mock.Anything, "doc-1", "Sheet1", sheets.ReadOptions{}).Return(planTable(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancelingDelay := func() time.Duration {
		cancel()
		return time.Minute
	}

	plans := FetchPlans(ctx, ms, matches, "Sheet1", cancelingDelay)
	assert.Len(t, plans, 1, "cancel during the delay stops the stage")
	ms.AssertNumberOfCalls(t, "ReadTable", 1)
}

func TestUniformDelay(t *testing.T) {
	fn := UniformDelay(2*time.Second, 5*time.Second)
	for i := 0; i < 50; i++ {
		d := fn()
		assert.GreaterOrEqual(t, d, 2*time.Second)
		assert.LessOrEqual(t, d, 5*time.Second)
	}

	assert.Equal(t, 3*time.Second, UniformDelay(3*time.Second, 3*time.Second)())
	assert.Equal(t, 4*time.Second, UniformDelay(4*time.Second, time.Second)(), "inverted bounds collapse to min")
}
