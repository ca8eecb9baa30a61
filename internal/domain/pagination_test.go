package domain

import "testing"

func TestNewPageRequest_Clamps(t *testing.T) {
	cases := []struct {
		page, pageSize         int
		wantPage, wantPageSize int
		wantOffset             int
	}{
		{1, 10, 1, 10, 0},
		{3, 5, 3, 5, 10},
		{0, 10, 1, 10, 0},
		{-2, 10, 1, 10, 0},
		{2, 0, 2, DefaultPageSize, 10},
		{1, -5, 1, DefaultPageSize, 0},
		{1, 1000, 1, MaxPageSize, 0},
	}

	for _, tc := range cases {
		req := NewPageRequest(tc.page, tc.pageSize)
		if req.Page != tc.wantPage || req.PageSize != tc.wantPageSize {
			t.Fatalf("NewPageRequest(%d, %d) = %+v", tc.page, tc.pageSize, req)
		}
		if req.Offset() != tc.wantOffset {
			t.Fatalf("NewPageRequest(%d, %d).Offset() = %d, want %d", tc.page, tc.pageSize, req.Offset(), tc.wantOffset)
		}
	}
}

func TestNewPageResult_TotalPagesFromTrueCount(t *testing.T) {
	cases := []struct {
		pageSize  int
		total     int64
		wantPages int
	}{
		{10, 0, 0},
		{10, 1, 1},
		{10, 10, 1},
		{10, 11, 2},
		{5, 23, 5},
	}

	for _, tc := range cases {
		res := NewPageResult(NewPageRequest(1, tc.pageSize), tc.total)
		if res.TotalPages != tc.wantPages {
			t.Fatalf("total=%d pageSize=%d: got %d pages, want %d", tc.total, tc.pageSize, res.TotalPages, tc.wantPages)
		}
		if res.TotalCount != tc.total {
			t.Fatalf("expected total count %d, got %d", tc.total, res.TotalCount)
		}
	}
}
