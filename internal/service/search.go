package service

import (
	"context"
	"log"
	"time"

	"propcore/internal/model"

	"github.com/google/uuid"
)

// PropertySource fetches raw pages from the property data collaborator.
// Implemented by client.PropertyClient.
type PropertySource interface {
	Search(ctx context.Context, query *model.UpstreamQuery) (interface{}, error)
}

// SearchLogger records search telemetry and user feedback. Implemented by
// repository.PostgresRepository; a nil logger disables telemetry.
type SearchLogger interface {
	LogSearch(ctx context.Context, searchID string, filters *model.StructuredFilter, total, kept, tookMs int) error
	LogFeedback(ctx context.Context, searchID, listingID, action string) error
}

// SearchService runs the per-request pipeline:
// resolve location -> fetch -> detect shape -> map -> filter -> re-paginate.
// It holds no mutable state between requests.
type SearchService struct {
	source      PropertySource
	resolver    LocationResolver
	repo        SearchLogger
	pageSize    int
	defaultSort string
}

// NewSearchService creates a search service. repo may be nil.
func NewSearchService(
	source PropertySource,
	resolver LocationResolver,
	repo SearchLogger,
	pageSize int,
	defaultSort string,
) *SearchService {
	return &SearchService{
		source:      source,
		resolver:    resolver,
		repo:        repo,
		pageSize:    pageSize,
		defaultSort: defaultSort,
	}
}

// Search fetches a page of listings for the structured query and returns
// it normalized, re-filtered and with corrected pagination estimates.
// Upstream fetch failures surface as a DependencyError; an unrecognized
// response shape degrades to an empty page instead.
func (s *SearchService) Search(ctx context.Context, req *model.SearchRequest) (*model.SearchResultPage, error) {
	startTime := time.Now()

	if req.Page < 0 {
		req.Page = 0
	}
	filters := req.Filter()

	// The location identifier is a required input to the listing query, so
	// resolution strictly precedes the fetch. A failed lookup degrades to an
	// unrestricted search rather than failing the request.
	if filters.LocationExternalID == "" && filters.Location != "" && s.resolver != nil {
		candidates, err := s.resolver.Resolve(ctx, filters.Location)
		if err != nil {
			log.Printf("location resolution failed for %q: %v", filters.Location, err)
		} else if len(candidates) > 0 {
			filters.Location = candidates[0].Name
			filters.LocationExternalID = candidates[0].ExternalID
		}
	}

	sort := req.Sort
	if sort == "" {
		sort = s.defaultSort
	}

	raw, err := s.source.Search(ctx, &model.UpstreamQuery{
		LocationExternalID: filters.LocationExternalID,
		Purpose:            filters.Purpose,
		CategoryID:         filters.Category,
		MinPrice:           filters.MinPrice,
		MaxPrice:           filters.MaxPrice,
		RoomsMin:           filters.Bedrooms,
		Sort:               sort,
		Page:               req.Page,
		HitsPerPage:        s.pageSize,
	})
	if err != nil {
		return nil, &model.DependencyError{Upstream: "property data source", Err: err}
	}

	searchID := uuid.NewString()

	shape := DetectShape(raw)
	if shape == ShapeUnknown {
		// Schema drift: favor availability and return an empty page.
		log.Printf("unrecognized property source response shape, returning empty page")
		return &model.SearchResultPage{
			SearchID:   searchID,
			Properties: []model.NormalizedListing{},
			Page:       req.Page,
			Took:       time.Since(startTime).Milliseconds(),
		}, nil
	}

	page := extractPage(raw, shape, req.Page, s.pageSize)
	mapped := MapRecords(page.records)
	kept := Reconcile(mapped, filters)
	total, totalPages, hasMore := AdjustPagination(page.total, len(page.records), len(kept), page.page, s.pageSize)

	properties := make([]model.NormalizedListing, len(kept))
	for i := range kept {
		properties[i] = kept[i].listing
	}

	took := time.Since(startTime).Milliseconds()

	if s.repo != nil {
		go func() {
			if err := s.repo.LogSearch(context.Background(), searchID, filters, total, len(kept), int(took)); err != nil {
				log.Printf("failed to log search %s: %v", searchID, err)
			}
		}()
	}

	return &model.SearchResultPage{
		SearchID:   searchID,
		Properties: properties,
		Total:      total,
		Page:       page.page,
		TotalPages: totalPages,
		HasMore:    hasMore,
		Took:       took,
	}, nil
}

// ResolveLocations exposes the location resolver for the autocomplete
// endpoint. Unlike in-pipeline resolution, failures here propagate.
func (s *SearchService) ResolveLocations(ctx context.Context, query string) ([]model.LocationCandidate, error) {
	candidates, err := s.resolver.Resolve(ctx, query)
	if err != nil {
		return nil, &model.DependencyError{Upstream: "location resolver", Err: err}
	}
	return candidates, nil
}

// LogFeedback records a user action against an earlier search.
func (s *SearchService) LogFeedback(ctx context.Context, searchID, listingID, action string) error {
	if s.repo == nil {
		return nil
	}
	return s.repo.LogFeedback(ctx, searchID, listingID, action)
}
