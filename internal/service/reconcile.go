package service

import (
	"math"

	"propcore/internal/model"
)

// The upstream provider's own filtering is not trusted to be exact: pages
// regularly contain records that violate the requested bounds. The
// reconciliation filter re-verifies every mapped record against the
// original filter set before it reaches the caller.

// MatchesFilter reports whether a normalized listing satisfies every
// active filter. categoryID is the raw upstream category identifier; a
// record with no discoverable category is not excluded by the category
// rule. Bedrooms use "N+" semantics, purpose is an exact match.
func MatchesFilter(l *model.NormalizedListing, categoryID string, f *model.StructuredFilter) bool {
	if f == nil {
		return true
	}
	if f.Bedrooms != nil && l.Bedrooms < *f.Bedrooms {
		return false
	}
	if f.MinPrice != nil && l.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && l.Price > *f.MaxPrice {
		return false
	}
	if f.Purpose != "" && l.ListingType != normalizeListingType(f.Purpose) {
		return false
	}
	if f.Category != "" && categoryID != "" && categoryID != f.Category {
		return false
	}
	return true
}

// Reconcile drops every mapped record that fails an active filter.
func Reconcile(items []mappedListing, f *model.StructuredFilter) []mappedListing {
	kept := make([]mappedListing, 0, len(items))
	for i := range items {
		if MatchesFilter(&items[i].listing, items[i].categoryID, f) {
			kept = append(kept, items[i])
		}
	}
	return kept
}

// AdjustPagination estimates corrected totals after reconciliation.
// Filtering only ran on the current page, so the backend total is scaled
// by the survival ratio of this page. The result is an estimate, not an
// exact count. When the estimate rounds down to zero pages but records
// survived, exactly one page containing them is reported.
func AdjustPagination(backendTotal, rawCount, kept, page, pageSize int) (total, totalPages int, hasMore bool) {
	if backendTotal < 0 {
		backendTotal = 0
	}
	if rawCount > 0 {
		total = int(math.Ceil(float64(backendTotal) * float64(kept) / float64(rawCount)))
	}
	totalPages = ceilDiv(total, pageSize)
	if kept > 0 && totalPages == 0 {
		totalPages = 1
		if total < kept {
			total = kept
		}
	}
	hasMore = kept > 0 && page < totalPages-1
	return total, totalPages, hasMore
}
