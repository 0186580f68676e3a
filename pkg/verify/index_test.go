package verify

import "testing"

func sampleRecords() []TitleRecord {
	return []TitleRecord{
		{ID: 1, Title: "Morning Herald", NormalizedTitle: "morning herald"},
		{ID: 2, Title: "Evening Herald", NormalizedTitle: "evening herald"},
		{ID: 3, Title: "Daily News", NormalizedTitle: "daily news"},
	}
}

func TestInvertedIndex_FilterByTokens(t *testing.T) {
	idx := NewInvertedIndex(sampleRecords())

	results := idx.FilterByTokens([]string{"herald"})
	if len(results) != 2 {
		t.Fatalf("expected 2 results for 'herald', got %d", len(results))
	}

	results = idx.FilterByTokens([]string{"news"})
	if len(results) != 1 || results[0].ID != 3 {
		t.Fatalf("expected single match id=3 for 'news', got %v", results)
	}

	results = idx.FilterByTokens([]string{"nonexistent"})
	if len(results) != 0 {
		t.Fatalf("expected no results for unknown token, got %d", len(results))
	}
}

func TestInvertedIndex_Append(t *testing.T) {
	idx := NewInvertedIndex(sampleRecords())
	if idx.TotalDocs() != 3 {
		t.Fatalf("TotalDocs() = %d, want 3", idx.TotalDocs())
	}

	idx.Append(TitleRecord{ID: 4, Title: "Weekly Herald", NormalizedTitle: "weekly herald"})
	if idx.TotalDocs() != 4 {
		t.Fatalf("TotalDocs() after append = %d, want 4", idx.TotalDocs())
	}

	results := idx.FilterByTokens([]string{"herald"})
	if len(results) != 3 {
		t.Fatalf("expected 3 'herald' matches after append, got %d", len(results))
	}
}

func TestInvertedIndex_AllRecords_SortedByID(t *testing.T) {
	idx := NewInvertedIndex(sampleRecords())
	records := idx.AllRecords()
	for i := 1; i < len(records); i++ {
		if records[i-1].ID > records[i].ID {
			t.Fatalf("AllRecords() not sorted by ID: %v", records)
		}
	}
}
