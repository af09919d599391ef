package model

// ListingLocation is the resolved place a listing belongs to.
type ListingLocation struct {
	City string `json:"city"`
	Area string `json:"area"`
}

// Agency is the listing agency with an optional logo URL.
type Agency struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// Agent is the contact person for a listing.
type Agent struct {
	Name string `json:"name"`
}

// NormalizedListing is the canonical property record produced by the
// normalizer, regardless of which upstream shape the raw record arrived in.
// Every field is populated with a defined default when the raw record is
// missing it; callers never see upstream field names.
type NormalizedListing struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Price           float64         `json:"price"`
	Currency        string          `json:"currency"`
	Location        ListingLocation `json:"location"`
	PropertyType    string          `json:"propertyType"`
	Bedrooms        int             `json:"bedrooms"`
	Bathrooms       int             `json:"bathrooms"`
	Area            float64         `json:"area"`
	AreaUnit        string          `json:"areaUnit"`
	Images          []string        `json:"images"`
	CoverImage      string          `json:"coverImage"`
	Amenities       []string        `json:"amenities"`
	Furnished       string          `json:"furnished"`
	ListingType     string          `json:"listingType"`
	RentFrequency   string          `json:"rentFrequency,omitempty"`
	Agency          Agency          `json:"agency"`
	Agent           Agent           `json:"agent"`
	IsVerified      bool            `json:"isVerified"`
	DatePosted      string          `json:"datePosted"`
	ReferenceNumber string          `json:"referenceNumber"`
}

// SearchRequest is the structured query surface of GET /api/v1/search.
// Every field is optional; unset numerics stay nil.
type SearchRequest struct {
	Location           string   `form:"location"`
	LocationExternalID string   `form:"locationExternalID"`
	Purpose            string   `form:"purpose"`
	Category           string   `form:"category"`
	Rooms              *int     `form:"rooms"`
	MinPrice           *float64 `form:"minPrice"`
	MaxPrice           *float64 `form:"maxPrice"`
	Sort               string   `form:"sort"`
	Page               int      `form:"page"`
}

// Filter converts the request into the canonical filter set.
func (r *SearchRequest) Filter() *StructuredFilter {
	return &StructuredFilter{
		Location:           r.Location,
		LocationExternalID: r.LocationExternalID,
		Purpose:            r.Purpose,
		Category:           r.Category,
		Bedrooms:           r.Rooms,
		MinPrice:           r.MinPrice,
		MaxPrice:           r.MaxPrice,
	}
}

// SearchResultPage is a page of normalized listings returned to the caller.
// Total and TotalPages are estimates: the defensive filter runs on the
// current page only, so backend totals are scaled proportionally.
type SearchResultPage struct {
	SearchID   string              `json:"search_id,omitempty"`
	Properties []NormalizedListing `json:"properties"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"totalPages"`
	HasMore    bool                `json:"hasMore"`
	Took       int64               `json:"took_ms"`
}

// FeedbackRequest records a user action on a previously returned listing.
type FeedbackRequest struct {
	SearchID  string `json:"search_id" binding:"required"`
	ListingID string `json:"listing_id" binding:"required"`
	Action    string `json:"action" binding:"required"` // click, contact, view_details
}

// FeedbackResponse is the acknowledgement for a feedback submission.
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
