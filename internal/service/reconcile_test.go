package service

import (
	"testing"

	"propcore/internal/model"
)

func listing(bedrooms int, price float64, listingType string) model.NormalizedListing {
	return model.NormalizedListing{
		Bedrooms:    bedrooms,
		Price:       price,
		ListingType: listingType,
	}
}

func TestMatchesFilter_Bedrooms(t *testing.T) {
	f := &model.StructuredFilter{Bedrooms: intPtr(2)}

	tests := []struct {
		bedrooms int
		want     bool
	}{
		{0, false},
		{1, false},
		{2, true},
		{3, true}, // "N+" semantics, not exact match
		{7, true},
	}
	for _, tt := range tests {
		l := listing(tt.bedrooms, 0, "for-sale")
		if got := MatchesFilter(&l, "", f); got != tt.want {
			t.Errorf("bedrooms %d: got %v, want %v", tt.bedrooms, got, tt.want)
		}
	}
}

func TestMatchesFilter_PriceBounds(t *testing.T) {
	tests := []struct {
		name  string
		f     model.StructuredFilter
		price float64
		want  bool
	}{
		{"below min", model.StructuredFilter{MinPrice: float64Ptr(100)}, 99, false},
		{"at min", model.StructuredFilter{MinPrice: float64Ptr(100)}, 100, true},
		{"at max", model.StructuredFilter{MaxPrice: float64Ptr(200)}, 200, true},
		{"above max", model.StructuredFilter{MaxPrice: float64Ptr(200)}, 201, false},
		{"inside band", model.StructuredFilter{MinPrice: float64Ptr(100), MaxPrice: float64Ptr(200)}, 150, true},
		{"outside band", model.StructuredFilter{MinPrice: float64Ptr(100), MaxPrice: float64Ptr(200)}, 250, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := listing(0, tt.price, "for-sale")
			if got := MatchesFilter(&l, "", &tt.f); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchesFilter_PurposeIsExact(t *testing.T) {
	f := &model.StructuredFilter{Purpose: model.PurposeForRent}

	forRent := listing(0, 0, "for-rent")
	if !MatchesFilter(&forRent, "", f) {
		t.Error("for-rent listing should pass a for-rent filter")
	}

	forSale := listing(0, 0, "for-sale")
	if MatchesFilter(&forSale, "", f) {
		t.Error("for-sale listing must not pass a for-rent filter")
	}
}

func TestMatchesFilter_CategoryUnknownPasses(t *testing.T) {
	f := &model.StructuredFilter{Category: "4"}

	l := listing(0, 0, "for-sale")
	if !MatchesFilter(&l, "4", f) {
		t.Error("matching category should pass")
	}
	if MatchesFilter(&l, "3", f) {
		t.Error("different category must be dropped")
	}
	// No discoverable category identifier: unknown, pass.
	if !MatchesFilter(&l, "", f) {
		t.Error("record without category identifier should pass")
	}
}

func TestMatchesFilter_Conjunctive(t *testing.T) {
	f := &model.StructuredFilter{
		Bedrooms: intPtr(2),
		MaxPrice: float64Ptr(1000000),
		Purpose:  model.PurposeForSale,
	}

	good := listing(3, 900000, "for-sale")
	if !MatchesFilter(&good, "", f) {
		t.Error("record satisfying all filters should pass")
	}

	badPrice := listing(3, 1100000, "for-sale")
	if MatchesFilter(&badPrice, "", f) {
		t.Error("one failing filter must drop the record")
	}
}

func TestReconcile_DropsMismatches(t *testing.T) {
	items := make([]mappedListing, 0, 10)
	for i := 0; i < 10; i++ {
		bedrooms := 1
		if i < 6 {
			bedrooms = 2 + i%2
		}
		items = append(items, mappedListing{listing: listing(bedrooms, 0, "for-sale")})
	}

	kept := Reconcile(items, &model.StructuredFilter{Bedrooms: intPtr(2)})
	if len(kept) != 6 {
		t.Fatalf("expected 6 kept records, got %d", len(kept))
	}
	for _, m := range kept {
		if m.listing.Bedrooms < 2 {
			t.Errorf("kept record with %d bedrooms", m.listing.Bedrooms)
		}
	}
}

func TestAdjustPagination_ScalesBackendTotal(t *testing.T) {
	total, totalPages, hasMore := AdjustPagination(100, 10, 6, 0, 10)
	if total != 60 {
		t.Errorf("total = %d, want 60", total)
	}
	if totalPages != 6 {
		t.Errorf("totalPages = %d, want 6", totalPages)
	}
	if !hasMore {
		t.Error("expected hasMore on first page of six")
	}
}

func TestAdjustPagination_ZeroPageCorrection(t *testing.T) {
	// Provider reported no total but records survived on the page.
	total, totalPages, hasMore := AdjustPagination(0, 2, 2, 0, 24)
	if totalPages != 1 {
		t.Errorf("totalPages = %d, want 1", totalPages)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
	if hasMore {
		t.Error("single-page result must not report more")
	}
}

func TestAdjustPagination_NothingKept(t *testing.T) {
	total, totalPages, hasMore := AdjustPagination(100, 10, 0, 0, 10)
	if total != 0 || totalPages != 0 || hasMore {
		t.Errorf("expected empty result, got %d/%d/%v", total, totalPages, hasMore)
	}
}

func TestAdjustPagination_NonNegative(t *testing.T) {
	cases := [][5]int{
		{0, 0, 0, 0, 24},
		{-5, 0, 0, 0, 24},
		{100, 10, 10, 3, 10},
		{1, 10, 1, 0, 24},
	}
	for _, c := range cases {
		total, totalPages, _ := AdjustPagination(c[0], c[1], c[2], c[3], c[4])
		if total < 0 || totalPages < 0 {
			t.Errorf("AdjustPagination%v produced negative counts %d/%d", c, total, totalPages)
		}
		if c[2] > 0 && totalPages < 1 {
			t.Errorf("AdjustPagination%v: kept records but zero pages", c)
		}
	}
}

func TestAdjustPagination_LastPageHasNoMore(t *testing.T) {
	// Page index 5 of 6 estimated pages (zero-based) is the last one.
	_, totalPages, hasMore := AdjustPagination(60, 10, 10, 5, 10)
	if totalPages != 6 {
		t.Fatalf("totalPages = %d, want 6", totalPages)
	}
	if hasMore {
		t.Error("last page must not report more")
	}
}
