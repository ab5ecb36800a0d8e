package tradejournal

import (
	"context"
	"testing"
)

func TestAddJournal(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	result, err := core.AddJournal(context.Background(), AddJournalRequest{Name: "  PSE swing  "})
	assertNoError(t, err, "add journal")
	if result.Code != CodeCreated || !result.Success {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Message != "Journal was successfully added" {
		t.Errorf("unexpected message %q", result.Message)
	}
	j := result.Journal
	if j == nil || j.ID == 0 {
		t.Fatalf("expected journal in result")
	}
	if j.Name != "PSE swing" || j.ExchangeID != DefaultExchangeID || j.Status != StatusActive {
		t.Errorf("unexpected journal: %+v", j)
	}

	journals, err := core.GetJournals(context.Background())
	assertNoError(t, err, "get journals")
	if len(journals) != 1 || journals[0].ID != j.ID {
		t.Fatalf("expected 1 journal, got %+v", journals)
	}
}

func TestAddJournal_RequiresName(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	result, err := core.AddJournal(context.Background(), AddJournalRequest{Name: "   "})
	assertErrorCode(t, err, ErrCodeValidation, "blank name")
	assertRejected(t, result, ErrCodeValidation, "blank name")
	if result.Message != "name is required" {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestRenameJournal(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	id := testJournal(t, core, "Old")
	result, err := core.RenameJournal(context.Background(), RenameJournalRequest{ID: id, Name: "New"})
	assertNoError(t, err, "rename journal")
	if result.Code != CodeUpdated || !result.Success {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Message != "Journal was successfully updated" {
		t.Errorf("unexpected message %q", result.Message)
	}

	j, err := core.GetJournal(context.Background(), id)
	assertNoError(t, err, "get journal")
	if j.Name != "New" {
		t.Errorf("expected renamed journal, got %q", j.Name)
	}
}

func TestRenameJournal_NotFound(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	result, err := core.RenameJournal(context.Background(), RenameJournalRequest{ID: 42, Name: "Ghost"})
	assertErrorCode(t, err, ErrCodeNotFound, "rename missing journal")
	assertRejected(t, result, ErrCodeNotFound, "rename missing journal")
}

func TestGetJournal_NotFound(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := core.GetJournal(context.Background(), 7)
	assertErrorCode(t, err, ErrCodeNotFound, "get missing journal")
}
