package model

// Listing purpose values. The upstream provider and the public API use the
// same canonical tokens.
const (
	PurposeForSale = "for-sale"
	PurposeForRent = "for-rent"
)

// StructuredFilter is the canonical filter set produced by the query
// interpreter and consumed by the search pipeline. All fields are optional;
// an unset string field is "" and an unset numeric field is nil.
type StructuredFilter struct {
	Location           string   `json:"location,omitempty"`
	LocationExternalID string   `json:"locationExternalID,omitempty"`
	Purpose            string   `json:"purpose,omitempty"`
	Category           string   `json:"category,omitempty"`
	Bedrooms           *int     `json:"bedrooms,omitempty"`
	MinPrice           *float64 `json:"minPrice,omitempty"`
	MaxPrice           *float64 `json:"maxPrice,omitempty"`
}

// IsEmpty reports whether no filter field is set.
func (f *StructuredFilter) IsEmpty() bool {
	return f.Location == "" && f.LocationExternalID == "" && f.Purpose == "" &&
		f.Category == "" && f.Bedrooms == nil && f.MinPrice == nil && f.MaxPrice == nil
}

// InterpretRequest is the body of POST /api/v1/interpret.
type InterpretRequest struct {
	Query string `json:"query"`
}

// InterpretResult is what the query interpreter returns: the extracted
// filters, a one-line human-readable summary and a pre-built search URL.
type InterpretResult struct {
	Filters StructuredFilter `json:"filters"`
	Summary string           `json:"summary"`
	URL     string           `json:"url"`
}

// LocationCandidate is one ranked hit from the location resolver.
type LocationCandidate struct {
	Name       string `json:"name"`
	ExternalID string `json:"externalID"`
}

// UpstreamQuery is the structured query sent to the property data source.
type UpstreamQuery struct {
	LocationExternalID string
	Purpose            string
	CategoryID         string
	MinPrice           *float64
	MaxPrice           *float64
	RoomsMin           *int
	Sort               string
	Page               int
	HitsPerPage        int
}
