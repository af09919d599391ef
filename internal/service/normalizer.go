package service

import (
	"log"
	"strings"

	"propcore/internal/model"
	"propcore/internal/utils"
)

// ResponseShape tags the known structural variants of the property data
// source's response envelope. The provider changes its envelope without
// notice, so classification is explicit and exhaustive instead of ad-hoc
// key probing at each use site.
type ResponseShape int

const (
	ShapeUnknown ResponseShape = iota
	ShapeHits                  // { hits: [...], nbHits, page, nbPages }
	ShapeWrapped               // { success: true, data: [...], total?, page?, totalPages? }
	ShapeData                  // { data: [...] } without a success flag
	ShapeList                  // bare array
)

func (s ResponseShape) String() string {
	switch s {
	case ShapeHits:
		return "hits"
	case ShapeWrapped:
		return "wrapped"
	case ShapeData:
		return "data"
	case ShapeList:
		return "list"
	}
	return "unknown"
}

// DetectShape classifies a decoded upstream payload into one of the known
// envelope shapes, first structural match wins. Anything unrecognized is
// ShapeUnknown, which downstream treats as zero results rather than an
// error.
func DetectShape(raw interface{}) ResponseShape {
	if _, ok := raw.([]interface{}); ok {
		return ShapeList
	}
	m := utils.AsMap(raw)
	if m == nil {
		return ShapeUnknown
	}
	if _, ok := m["hits"].([]interface{}); ok {
		return ShapeHits
	}
	if _, ok := m["data"].([]interface{}); ok {
		if flag, present := m["success"]; present {
			if utils.AsBool(flag) {
				return ShapeWrapped
			}
			// A success flag that is not true is an upstream refusal, not a
			// result set.
			return ShapeUnknown
		}
		return ShapeData
	}
	return ShapeUnknown
}

// rawPage is the envelope content extracted from an upstream response:
// the raw records plus whatever totals the provider reported.
type rawPage struct {
	records    []interface{}
	total      int
	page       int
	totalPages int
}

// extractPage pulls records and pagination counts out of a classified
// payload. Missing totals are derived from the page size and the current
// page index.
func extractPage(raw interface{}, shape ResponseShape, reqPage, pageSize int) rawPage {
	switch shape {
	case ShapeHits:
		m := utils.AsMap(raw)
		records := utils.AsSlice(m["hits"])
		p := rawPage{records: records, page: reqPage}
		if n, ok := utils.FirstInt(m, []string{"nbHits"}); ok {
			p.total = n
		} else {
			p.total = derivedTotal(reqPage, pageSize, len(records))
		}
		if n, ok := utils.FirstInt(m, []string{"page"}); ok {
			p.page = n
		}
		if n, ok := utils.FirstInt(m, []string{"nbPages"}); ok {
			p.totalPages = n
		} else {
			p.totalPages = ceilDiv(p.total, pageSize)
		}
		return p

	case ShapeWrapped, ShapeData:
		m := utils.AsMap(raw)
		records := utils.AsSlice(m["data"])
		p := rawPage{records: records, page: reqPage}
		if n, ok := utils.FirstInt(m, []string{"total"}, []string{"pagination", "total"}, []string{"count"}); ok {
			p.total = n
		} else {
			p.total = derivedTotal(reqPage, pageSize, len(records))
		}
		if n, ok := utils.FirstInt(m, []string{"page"}, []string{"pagination", "page"}); ok {
			p.page = n
		}
		if n, ok := utils.FirstInt(m, []string{"totalPages"}, []string{"pagination", "totalPages"}); ok {
			p.totalPages = n
		} else {
			p.totalPages = ceilDiv(p.total, pageSize)
		}
		return p

	case ShapeList:
		records := utils.AsSlice(raw)
		total := derivedTotal(reqPage, pageSize, len(records))
		return rawPage{
			records:    records,
			total:      total,
			page:       reqPage,
			totalPages: ceilDiv(total, pageSize),
		}
	}
	return rawPage{}
}

func derivedTotal(page, pageSize, recordCount int) int {
	if page < 0 {
		page = 0
	}
	return page*pageSize + recordCount
}

func ceilDiv(a, b int) int {
	if b <= 0 || a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// mappedListing couples a normalized listing with the raw category
// identifier, which the reconciliation filter needs but the public record
// does not carry.
type mappedListing struct {
	listing    model.NormalizedListing
	categoryID string
}

// MapRecords normalizes every raw record on a page. A record that cannot
// be mapped (wrong type, panic during field access) is logged and skipped;
// one bad record never fails the page.
func MapRecords(records []interface{}) []mappedListing {
	out := make([]mappedListing, 0, len(records))
	for i, raw := range records {
		m, ok := mapRecord(raw)
		if !ok {
			log.Printf("skipping unmappable record at index %d", i)
			continue
		}
		out = append(out, m)
	}
	return out
}

func mapRecord(raw interface{}) (m mappedListing, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("record mapping panicked: %v", r)
			ok = false
		}
	}()

	rec := utils.AsMap(raw)
	if rec == nil {
		return mappedListing{}, false
	}
	if isAlternateRecord(rec) {
		m = mapAlternateRecord(rec)
	} else {
		m = mapLegacyRecord(rec)
	}
	applyDefaults(&m.listing)
	return m, true
}

// isAlternateRecord reports whether a record uses the alternate per-record
// shape, marked by nested property_info or features objects.
func isAlternateRecord(rec map[string]interface{}) bool {
	if _, ok := rec["property_info"]; ok {
		return true
	}
	if _, ok := rec["features"]; ok {
		return true
	}
	return false
}

// mapLegacyRecord handles the primary provider's per-record shape: ordered
// location/category hierarchies and photos as objects with a url.
func mapLegacyRecord(rec map[string]interface{}) mappedListing {
	l := model.NormalizedListing{}

	l.ID = utils.FirstString(rec, []string{"id"}, []string{"externalID"})
	l.Title = utils.FirstString(rec, []string{"title"})
	if n, ok := utils.FirstNumber(rec, []string{"price"}); ok && n > 0 {
		l.Price = n
	}

	// Location hierarchy is ordered country > city > community > sub-community.
	locations := utils.StringList(rec["location"], "name")
	if len(locations) > 1 {
		l.Location.City = locations[1]
	} else if len(locations) == 1 {
		l.Location.City = locations[0]
	}
	if len(locations) > 0 {
		l.Location.Area = locations[len(locations)-1]
	}

	categories := utils.AsSlice(rec["category"])
	if len(categories) > 0 {
		last := utils.AsMap(categories[len(categories)-1])
		l.PropertyType = utils.AsString(last["name"])
	}

	if n, ok := utils.FirstInt(rec, []string{"rooms"}); ok && n >= 0 {
		l.Bedrooms = n
	}
	if n, ok := utils.FirstInt(rec, []string{"baths"}); ok && n >= 0 {
		l.Bathrooms = n
	}
	if n, ok := utils.FirstNumber(rec, []string{"area"}); ok && n > 0 {
		l.Area = n
	}

	l.Images = utils.StringList(rec["photos"], "url")
	l.CoverImage = utils.FirstString(rec, []string{"coverPhoto", "url"})

	l.Amenities = flattenAmenities(rec["amenities"])
	l.Furnished = utils.FirstString(rec, []string{"furnishingStatus"})
	l.ListingType = normalizeListingType(utils.FirstString(rec, []string{"purpose"}))
	l.RentFrequency = utils.FirstString(rec, []string{"rentFrequency"})

	l.Agency.Name = utils.FirstString(rec, []string{"agency", "name"})
	l.Agency.Logo = utils.FirstString(rec, []string{"agency", "logo", "url"})
	l.Agent.Name = utils.FirstString(rec, []string{"contactName"}, []string{"agent", "name"})

	l.IsVerified = utils.AsBool(utils.Dig(rec, "isVerified"))
	l.DatePosted = utils.ToISO8601(firstPresent(rec, "createdAt", "updatedAt"))
	l.ReferenceNumber = utils.FirstString(rec, []string{"referenceNumber"})

	return mappedListing{listing: l, categoryID: legacyCategoryID(categories)}
}

// legacyCategoryID picks the most specific category identifier, which is
// the last element of the hierarchy.
func legacyCategoryID(categories []interface{}) string {
	for i := len(categories) - 1; i >= 0; i-- {
		c := utils.AsMap(categories[i])
		if c == nil {
			continue
		}
		if id := utils.AsString(c["externalID"]); id != "" {
			return id
		}
		if id := utils.AsString(c["id"]); id != "" {
			return id
		}
	}
	return ""
}

// mapAlternateRecord handles the wrapped provider variant that nests most
// fields under property_info and carries amenities inside features.
func mapAlternateRecord(rec map[string]interface{}) mappedListing {
	l := model.NormalizedListing{}

	l.ID = utils.FirstString(rec,
		[]string{"id"}, []string{"listing_id"}, []string{"property_info", "id"}, []string{"externalID"})
	l.Title = utils.FirstString(rec,
		[]string{"title"}, []string{"property_info", "title"}, []string{"name"})

	if n, ok := utils.FirstNumber(rec,
		[]string{"price", "asking_price"},
		[]string{"price", "asking_price_parsed"},
		[]string{"price"}); ok && n > 0 {
		l.Price = n
	}
	l.Currency = utils.FirstString(rec, []string{"price", "currency"}, []string{"currency"})

	l.Location = alternateLocation(rec)

	l.PropertyType = utils.FirstString(rec,
		[]string{"property_info", "type"}, []string{"property_info", "category"}, []string{"type"})

	if n, ok := utils.FirstInt(rec,
		[]string{"property_info", "bedrooms"}, []string{"features", "bedrooms"}, []string{"bedrooms"}); ok && n >= 0 {
		l.Bedrooms = n
	}
	if n, ok := utils.FirstInt(rec,
		[]string{"property_info", "bathrooms"}, []string{"features", "bathrooms"}, []string{"bathrooms"}); ok && n >= 0 {
		l.Bathrooms = n
	}
	if n, ok := utils.FirstNumber(rec,
		[]string{"property_info", "size"}, []string{"property_info", "area"}, []string{"area"}); ok && n > 0 {
		l.Area = n
	}

	l.Images = utils.StringList(rec["images"], "url", "href")
	l.CoverImage = utils.FirstString(rec, []string{"cover_image"}, []string{"coverPhoto", "url"})

	l.Amenities = flattenAmenities(firstPresent(rec, "amenities", "features"))
	l.Furnished = utils.FirstString(rec,
		[]string{"property_info", "furnishing"}, []string{"furnished"})
	l.ListingType = normalizeListingType(utils.FirstString(rec,
		[]string{"purpose"}, []string{"property_info", "purpose"}, []string{"listing_type"}))
	l.RentFrequency = utils.FirstString(rec,
		[]string{"rent_frequency"}, []string{"property_info", "rent_frequency"})

	l.Agency.Name = utils.FirstString(rec,
		[]string{"agency", "name"}, []string{"broker", "name"})
	l.Agency.Logo = utils.FirstString(rec,
		[]string{"agency", "logo", "url"}, []string{"agency", "logo"}, []string{"broker", "logo"})
	l.Agent.Name = utils.FirstString(rec,
		[]string{"agent", "name"}, []string{"property_info", "agent"}, []string{"contactName"})

	l.IsVerified = utils.AsBool(firstPresent(rec, "is_verified", "isVerified", "verified"))
	l.DatePosted = utils.ToISO8601(firstPresent(rec, "created_at", "date_posted", "createdAt"))
	l.ReferenceNumber = utils.FirstString(rec,
		[]string{"reference_number"}, []string{"property_info", "reference"}, []string{"referenceNumber"})

	categoryID := utils.FirstString(rec,
		[]string{"category_id"}, []string{"property_info", "category_id"}, []string{"category", "externalID"})

	return mappedListing{listing: l, categoryID: categoryID}
}

// alternateLocation accepts either a location object with city/area keys
// or a single "Area, City" string.
func alternateLocation(rec map[string]interface{}) model.ListingLocation {
	loc := model.ListingLocation{}
	raw := firstPresent(rec, "location")
	if raw == nil {
		raw = utils.Dig(rec, "property_info", "location")
	}
	if obj := utils.AsMap(raw); obj != nil {
		loc.City = utils.FirstString(obj, []string{"city"})
		loc.Area = utils.FirstString(obj, []string{"area"}, []string{"community"}, []string{"district"})
		return loc
	}
	if s := utils.AsString(raw); s != "" {
		parts := strings.Split(s, ",")
		loc.Area = strings.TrimSpace(parts[0])
		loc.City = strings.TrimSpace(parts[len(parts)-1])
	}
	return loc
}

// flattenAmenities accepts every amenity encoding seen upstream: a list of
// strings, a list of {text|name} objects, grouped lists nested under an
// "amenities" key, or an object of boolean feature flags.
func flattenAmenities(v interface{}) []string {
	if obj := utils.AsMap(v); obj != nil {
		out := []string{}
		for name, flag := range obj {
			if utils.AsBool(flag) {
				out = append(out, name)
			}
		}
		return out
	}
	items := utils.AsSlice(v)
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := utils.AsString(item); s != "" {
			out = append(out, s)
			continue
		}
		obj := utils.AsMap(item)
		if obj == nil {
			continue
		}
		if nested := utils.AsSlice(obj["amenities"]); nested != nil {
			out = append(out, flattenAmenities(nested)...)
			continue
		}
		if s := utils.FirstString(obj, []string{"text"}, []string{"name"}); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// normalizeListingType maps raw purpose tokens onto the two canonical
// values. Unknown tokens default to for-sale.
func normalizeListingType(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == model.PurposeForSale || s == model.PurposeForRent:
		return s
	case strings.Contains(s, "rent"):
		return model.PurposeForRent
	case strings.Contains(s, "sale"):
		return model.PurposeForSale
	}
	return model.PurposeForSale
}

// firstPresent returns the first key of rec that exists with a non-nil
// value.
func firstPresent(rec map[string]interface{}, keys ...string) interface{} {
	for _, key := range keys {
		if v, ok := rec[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// applyDefaults fills the documented defaults so callers always see a
// complete record.
func applyDefaults(l *model.NormalizedListing) {
	if l.Currency == "" {
		l.Currency = "AED"
	}
	if l.AreaUnit == "" {
		l.AreaUnit = "sqft"
	}
	if l.Furnished == "" {
		l.Furnished = "unfurnished"
	}
	if l.Images == nil {
		l.Images = []string{}
	}
	if l.CoverImage == "" && len(l.Images) > 0 {
		l.CoverImage = l.Images[0]
	}
	if l.Amenities == nil {
		l.Amenities = []string{}
	}
	if l.ID == "" && l.ReferenceNumber != "" {
		l.ID = l.ReferenceNumber
	}
}
