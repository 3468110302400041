package helpers

import "testing"

func TestCalculateOffsetLimit(t *testing.T) {
	cases := []struct {
		page, size int
		offset     uint64
		limit      int
	}{
		{1, 10, 0, 10},
		{3, 10, 20, 10},
		{2, 25, 25, 25},
		{0, 10, 0, 10},     // page below 1 falls back to the first page
		{1, 0, 0, 10},      // size below 1 falls back to the default
		{1, 1000, 0, 10},   // size above the cap falls back to the default
		{-5, -5, 0, 10},
	}

	for _, tc := range cases {
		offset, limit := CalculateOffsetLimit(tc.page, tc.size)
		if offset != tc.offset || limit != tc.limit {
			t.Errorf("CalculateOffsetLimit(%d, %d) = (%d, %d), want (%d, %d)",
				tc.page, tc.size, offset, limit, tc.offset, tc.limit)
		}
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(42, 2, 10)
	if info.TotalPages != 5 {
		t.Fatalf("TotalPages = %d, want 5", info.TotalPages)
	}
	if info.CurrentPage != 2 || info.PageSize != 10 || info.TotalItems != 42 {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestNewPaginationInfoEmpty(t *testing.T) {
	info := NewPaginationInfo(0, 1, 10)
	if info.TotalPages != 1 || info.CurrentPage != 1 {
		t.Fatalf("unexpected info for empty set: %+v", info)
	}
}

func TestNewPaginationInfoClampsPage(t *testing.T) {
	info := NewPaginationInfo(10, 9, 10)
	if info.CurrentPage != 1 {
		t.Fatalf("CurrentPage = %d, want clamped to 1", info.CurrentPage)
	}
}
