package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/noktah-inovasi/contentops/internal/model"
	"github.com/noktah-inovasi/contentops/internal/store"
	"github.com/noktah-inovasi/contentops/pkg/drive"
	"github.com/noktah-inovasi/contentops/pkg/jira"
	"github.com/noktah-inovasi/contentops/pkg/sheets"
)

// --- Sheets Mock ---

type mockSheetsClient struct {
	mock.Mock
}

func (m *mockSheetsClient) TestConnection(ctx context.Context, spreadsheetID string) error {
	args := m.Called(ctx, spreadsheetID)
	return args.Error(0)
}

func (m *mockSheetsClient) GetSpreadsheetInfo(ctx context.Context, spreadsheetID string) (*sheets.SpreadsheetInfo, error) {
	args := m.Called(ctx, spreadsheetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sheets.SpreadsheetInfo), args.Error(1)
}

func (m *mockSheetsClient) ReadTable(ctx context.Context, spreadsheetID, sheetName string, opts sheets.ReadOptions) (*sheets.Table, error) {
	args := m.Called(ctx, spreadsheetID, sheetName, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sheets.Table), args.Error(1)
}

// --- Drive Mock ---

type mockDriveClient struct {
	mock.Mock
}

func (m *mockDriveClient) ListFiles(ctx context.Context, folderID, nameContains string, recursive bool) ([]drive.File, error) {
	args := m.Called(ctx, folderID, nameContains, recursive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]drive.File), args.Error(1)
}

// --- Jira Mock ---

type mockJiraClient struct {
	mock.Mock
}

func (m *mockJiraClient) GetServerInfo(ctx context.Context) (*jira.ServerInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jira.ServerInfo), args.Error(1)
}

func (m *mockJiraClient) CreateIssuesBulk(ctx context.Context, fields []any) (*jira.BulkResult, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jira.BulkResult), args.Error(1)
}

// --- Store Mock ---

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateRun(ctx context.Context, period string, params model.RunParams) (*model.Run, error) {
	args := m.Called(ctx, period, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Run), args.Error(1)
}

func (m *mockStore) UpdateRunStatus(ctx context.Context, id string, status model.RunStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockStore) UpdateRunResult(ctx context.Context, id string, result *model.RunResult) error {
	args := m.Called(ctx, id, result)
	return args.Error(0)
}

func (m *mockStore) GetRun(ctx context.Context, id string) (*model.Run, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Run), args.Error(1)
}

func (m *mockStore) ListRuns(ctx context.Context, filter store.RunFilter) ([]model.Run, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Run), args.Error(1)
}

func (m *mockStore) CreateStage(ctx context.Context, runID, name string) (*model.RunStage, error) {
	args := m.Called(ctx, runID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RunStage), args.Error(1)
}

func (m *mockStore) CompleteStage(ctx context.Context, stageID string, info *model.StageInfo) error {
	args := m.Called(ctx, stageID, info)
	return args.Error(0)
}

func (m *mockStore) Migrate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
