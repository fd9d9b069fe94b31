package docstore

import (
	"context"
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestMemory_PutGet(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	if err := store.Put(ctx, "seasons", "100", []byte(`{"SeasonPId":100,"SeasonShortName":"s2021agl"}`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	doc, found, err := store.Get(ctx, "seasons", "100")
	if err != nil || !found {
		t.Fatalf("get: found=%t err=%v", found, err)
	}
	var decoded struct {
		SeasonPID int64 `json:"SeasonPId"`
	}
	if err := sonic.Unmarshal(doc, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.SeasonPID != 100 {
		t.Fatalf("unexpected season id: %d", decoded.SeasonPID)
	}

	if _, found, err := store.Get(ctx, "seasons", "999"); err != nil || found {
		t.Fatalf("expected clean miss, found=%t err=%v", found, err)
	}
}

func TestMemory_ScanFilterAndProjection(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	docs := map[string]string{
		"100": `{"SeasonPId":100,"SeasonShortName":"w2020pl","Information":{"Status":"Closed"}}`,
		"101": `{"SeasonPId":101,"SeasonShortName":"s2021agl","Information":{"Status":"Open"}}`,
	}
	for key, doc := range docs {
		if err := store.Put(ctx, "seasons", key, []byte(doc)); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}

	rows, err := store.Scan(ctx, "seasons", []string{"SeasonPId"}, "SeasonShortName", "s2021agl")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 filtered row, got %d", len(rows))
	}

	var partial map[string]any
	if err := sonic.Unmarshal(rows[0], &partial); err != nil {
		t.Fatalf("decode partial: %v", err)
	}
	if _, ok := partial["SeasonPId"]; !ok {
		t.Fatal("projection dropped requested field")
	}
	if _, ok := partial["Information"]; ok {
		t.Fatal("projection kept unrequested field")
	}

	rows, err = store.Scan(ctx, "seasons", nil, "", "")
	if err != nil {
		t.Fatalf("scan all: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}

func TestMemory_ScanNumericFilter(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()
	if err := store.Put(ctx, "tournaments", "7", []byte(`{"TournamentPId":7,"SeasonPId":100}`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	rows, err := store.Scan(ctx, "tournaments", nil, "SeasonPId", "100")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("numeric filter missed, got %d rows", len(rows))
	}
}

func TestMemory_UpdatePath(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()
	if err := store.Put(ctx, "seasons", "100", []byte(`{"SeasonPId":100,"Codes":{"TournamentApiId":555,"Weeks":{}}}`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	weeks := []byte(`{"W1":{"Timestamp":1622505600,"Primary":[],"Backups":["code-a"]}}`)
	if err := store.UpdatePath(ctx, "seasons", "100", []string{"Codes", "Weeks"}, weeks); err != nil {
		t.Fatalf("update path: %v", err)
	}

	doc, _, err := store.Get(ctx, "seasons", "100")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var decoded struct {
		Codes struct {
			TournamentAPIID int64 `json:"TournamentApiId"`
			Weeks           map[string]struct {
				Backups []string `json:"Backups"`
			} `json:"Weeks"`
		} `json:"Codes"`
	}
	if err := sonic.Unmarshal(doc, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Codes.TournamentAPIID != 555 {
		t.Fatal("sibling field lost by partial update")
	}
	if len(decoded.Codes.Weeks["W1"].Backups) != 1 {
		t.Fatalf("unexpected weeks after update: %+v", decoded.Codes.Weeks)
	}

	if err := store.UpdatePath(ctx, "seasons", "404", []string{"Codes"}, []byte(`{}`)); err == nil {
		t.Fatal("expected error updating missing document")
	}
}
