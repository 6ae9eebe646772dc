package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/noktah-inovasi/contentops/internal/model"
	"github.com/noktah-inovasi/contentops/pkg/drive"
)

func TestExpectedDocumentName(t *testing.T) {
	assert.Equal(t, "Content Plan - Karsa Studio - September 2025",
		ExpectedDocumentName("Karsa Studio", "September 2025"))
}

func TestLocateDocuments(t *testing.T) {
	clients := []model.ClientRecord{
		{Number: 1, Name: "Acme Dental", FolderRef: "folder-1"},
		{Number: 2, Name: "", FolderRef: "folder-2"},
		{Number: 3, Name: "Karsa Studio", FolderRef: "folder-3"},
	}

	md := new(mockDriveClient)
	md.On("ListFiles", mock.Anything, "folder-1", "Content Plan - Acme Dental", false).
		Return([]drive.File{
			{ID: "doc-old", Name: "Content Plan - Acme Dental - Agustus 2025"},
			{ID: "doc-new", Name: "Content Plan - Acme Dental - September 2025"},
		}, nil)
	md.On("ListFiles", mock.Anything, "folder-3", "Content Plan - Karsa Studio", false).
		Return([]drive.File{}, nil)

	matches := LocateDocuments(context.Background(), md, clients, "September 2025", false)
	require.Len(t, matches, 3, "one match per client, in order")

	assert.Equal(t, "doc-new", matches[0].DocumentID)
	assert.Equal(t, model.MatchExact, matches[0].MatchRule)
	assert.Len(t, matches[0].Candidates, 2)

	assert.True(t, matches[1].Skipped)
	assert.Equal(t, "missing client name or folder ref", matches[1].SkipReason)

	assert.False(t, matches[2].Found())
	assert.Equal(t, model.MatchNone, matches[2].MatchRule)

	// Two searches for three clients: the skipped client never hits the service.
	md.AssertNumberOfCalls(t, "ListFiles", 2)
}

func TestLocateDocumentsExactBeatsSubstring(t *testing.T) {
	clients := []model.ClientRecord{{Number: 1, Name: "Acme", FolderRef: "f1"}}

	md := new(mockDriveClient)
	md.On("ListFiles", mock.Anything, "f1", "Content Plan - Acme", false).
		Return([]drive.File{
			{ID: "doc-copy", Name: "Copy of Content Plan - Acme - September 2025"},
			{ID: "doc-exact", Name: "Content Plan - Acme - September 2025"},
		}, nil)

	matches := LocateDocuments(context.Background(), md, clients, "September 2025", false)
	require.Len(t, matches, 1)
	assert.Equal(t, "doc-exact", matches[0].DocumentID)
	assert.Equal(t, model.MatchExact, matches[0].MatchRule)
}

func TestLocateDocumentsSubstringFallback(t *testing.T) {
	clients := []model.ClientRecord{{Number: 1, Name: "Acme", FolderRef: "f1"}}

	md := new(mockDriveClient)
	md.On("ListFiles", mock.Anything, "f1", "Content Plan - Acme", false).
		Return([]drive.File{
			{ID: "doc-1", Name: "Content Plan - Acme - September 2025 (rev 2)"},
			{ID: "doc-2", Name: "Content Plan - Acme - September 2025 (rev 3)"},
		}, nil)

	matches := LocateDocuments(context.Background(), md, clients, "September 2025", false)
	require.Len(t, matches, 1)
	assert.Equal(t, "doc-1", matches[0].DocumentID, "first hit wins within a rule")
	assert.Equal(t, model.MatchSubstring, matches[0].MatchRule)
}

func TestLocateDocumentsSearchFailureIsolated(t *testing.T) {
	clients := []model.ClientRecord{
		{Number: 1, Name: "Acme", FolderRef: "f1"},
		{Number: 2, Name: "Beta", FolderRef: "f2"},
	}

	md := new(mockDriveClient)
	md.On("ListFiles", mock.Anything, "f1", "Content Plan - Acme", false).
		Return(nil, assert.AnError)
	md.On("ListFiles", mock.Anything, "f2", "Content Plan - Beta", false).
		Return([]drive.File{{ID: "doc-b", Name: "Content Plan - Beta - September 2025"}}, nil)

	matches := LocateDocuments(context.Background(), md, clients, "September 2025", false)
	require.Len(t, matches, 2)
	assert.NotEmpty(t, matches[0].Error)
	assert.False(t, matches[0].Found())
	assert.Equal(t, "doc-b", matches[1].DocumentID, "one failure never stops the rest")
}

func TestLocateDocumentsRecursiveFlag(t *testing.T) {
	clients := []model.ClientRecord{{Number: 1, Name: "Acme", FolderRef: "f1"}}

	md := new(mockDriveClient)
	md.On("ListFiles", mock.Anything, "f1", "Content Plan - Acme", true).
		Return([]drive.File{}, nil)

	LocateDocuments(context.Background(), md, clients, "September 2025", true)
	md.AssertExpectations(t)
}
