package storage

import (
	"testing"
	"time"
)

func newTestStorage(t *testing.T) *TurnStorage {
	t.Helper()
	ts, err := NewTurnStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewTurnStorage() error = %v", err)
	}
	t.Cleanup(func() { ts.Close() })
	return ts
}

func TestSaveAndGet(t *testing.T) {
	ts := newTestStorage(t)

	turn := &Turn{
		Dataset:      "sales.csv",
		Question:     "total units?",
		Answer:       "Total units: **35**",
		ChartPath:    "/tmp/chart.png",
		Steps:        2,
		StepLimitHit: false,
	}
	if err := ts.Save(turn); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if turn.ID == "" {
		t.Fatal("Save() should assign an ID")
	}
	if turn.CreatedAt.IsZero() {
		t.Fatal("Save() should stamp CreatedAt")
	}

	got, err := ts.Get(turn.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Question != turn.Question || got.Answer != turn.Answer {
		t.Errorf("Get() = %+v", got)
	}
	if got.ChartPath != "/tmp/chart.png" {
		t.Errorf("ChartPath = %q", got.ChartPath)
	}
}

func TestGetMissing(t *testing.T) {
	ts := newTestStorage(t)
	if _, err := ts.Get("no-such-id"); err == nil {
		t.Error("Get() on missing id should fail")
	}
}

func TestListOrdering(t *testing.T) {
	ts := newTestStorage(t)

	base := time.Now().Add(-time.Hour)
	for i, q := range []string{"first", "second", "third"} {
		err := ts.Save(&Turn{
			Dataset:   "d.csv",
			Question:  q,
			Answer:    "a",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	turns, err := ts.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(turns) != 3 {
		t.Fatalf("List() length = %d, want 3", len(turns))
	}
	if turns[0].Question != "third" {
		t.Errorf("newest first: got %q", turns[0].Question)
	}
}

func TestListByDataset(t *testing.T) {
	ts := newTestStorage(t)

	for _, d := range []string{"a.csv", "b.csv", "a.csv"} {
		if err := ts.Save(&Turn{Dataset: d, Question: "q", Answer: "a"}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	turns, err := ts.ListByDataset("a.csv")
	if err != nil {
		t.Fatalf("ListByDataset() error = %v", err)
	}
	if len(turns) != 2 {
		t.Errorf("length = %d, want 2", len(turns))
	}
}

func TestDelete(t *testing.T) {
	ts := newTestStorage(t)

	turn := &Turn{Dataset: "d.csv", Question: "q", Answer: "a"}
	if err := ts.Save(turn); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := ts.Delete(turn.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := ts.Get(turn.ID); err == nil {
		t.Error("Get() after Delete() should fail")
	}
}

func TestSearchTurns(t *testing.T) {
	ts := newTestStorage(t)

	questions := []string{
		"what is the total revenue by region?",
		"plot units over time",
		"which product sells best?",
	}
	for _, q := range questions {
		if err := ts.Save(&Turn{Dataset: "d.csv", Question: q, Answer: "a"}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	matches, err := ts.SearchTurns("revenue")
	if err != nil {
		t.Fatalf("SearchTurns() error = %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("SearchTurns(revenue) found nothing")
	}
	if matches[0].Turn.Question != questions[0] {
		t.Errorf("best match = %q", matches[0].Turn.Question)
	}

	all, err := ts.SearchTurns("")
	if err != nil {
		t.Fatalf("SearchTurns() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("empty query returned %d matches, want all 3", len(all))
	}
}
