package service

import (
	"context"
	"log"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"propcore/internal/model"
)

// LocationResolver looks up free-text place names and returns ranked
// candidates. Implemented by client.LocationClient.
type LocationResolver interface {
	Resolve(ctx context.Context, query string) ([]model.LocationCandidate, error)
}

// CategoryMapping binds property-type words to an opaque upstream category
// identifier. Keywords are matched by substring containment on the lowered
// query; the slice order of DefaultCategories is the tie-break when several
// mappings match.
type CategoryMapping struct {
	Keywords   []string
	ExternalID string
	Name       string
	Plural     string
}

// DefaultCategories is the fixed category table of the upstream provider.
// Order matters: the first matching entry wins.
var DefaultCategories = []CategoryMapping{
	{Keywords: []string{"apartment", "flat"}, ExternalID: "4", Name: "apartment", Plural: "apartments"},
	{Keywords: []string{"villa"}, ExternalID: "3", Name: "villa", Plural: "villas"},
	{Keywords: []string{"townhouse"}, ExternalID: "16", Name: "townhouse", Plural: "townhouses"},
	{Keywords: []string{"penthouse"}, ExternalID: "18", Name: "penthouse", Plural: "penthouses"},
	{Keywords: []string{"office"}, ExternalID: "5", Name: "office", Plural: "offices"},
	{Keywords: []string{"shop"}, ExternalID: "6", Name: "shop", Plural: "shops"},
}

// Interpreter turns a free-text property query into a structured filter
// set, a one-line summary and a pre-built search URL. Extraction is
// best-effort: a field that cannot be recognized is simply left unset and
// the only hard failure is an empty query.
type Interpreter struct {
	categories []CategoryMapping
	resolver   LocationResolver
	currency   string
	sort       string
}

// NewInterpreter creates an interpreter with the given category table. A
// nil resolver disables location extraction.
func NewInterpreter(categories []CategoryMapping, resolver LocationResolver) *Interpreter {
	if categories == nil {
		categories = DefaultCategories
	}
	return &Interpreter{
		categories: categories,
		resolver:   resolver,
		currency:   "AED",
		sort:       "date-desc",
	}
}

var (
	underRe  = regexp.MustCompile(`(?i)\b(?:under|below|less\s+than)\s+(?:aed\s+)?(\d[\d,]*(?:\.\d+)?)\s*(m|million|k|thousand)?\b`)
	rangeRe  = regexp.MustCompile(`(?i)\b(\d[\d,]*(?:\.\d+)?)\s*(m|million|k|thousand)?\s*(?:to|-)\s*(?:aed\s+)?(\d[\d,]*(?:\.\d+)?)\s*(m|million|k|thousand)?\b`)
	aroundRe = regexp.MustCompile(`(?i)\baround\s+(?:aed\s+)?(\d[\d,]*(?:\.\d+)?)\s*(m|million|k|thousand)?\b`)
	bedRe    = regexp.MustCompile(`(?i)\b(\d+)[\s-]*(?:bhk|bedrooms?|beds?|br)\b`)
	locRe    = regexp.MustCompile(`(?i)\bin\s+([a-z][a-z0-9'\- ]*)$`)
)

// Words that terminate a location phrase captured after "in".
var locationStopWords = map[string]bool{
	"for": true, "under": true, "below": true, "around": true,
	"less": true, "with": true, "between": true, "to": true,
}

// Interpret parses a free-text query. It returns a ValidationError only
// for an empty query; unparseable text degrades to an empty filter set.
func (p *Interpreter) Interpret(ctx context.Context, query string) (*model.InterpretResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, model.NewValidationError("query", "query must be a non-empty string")
	}

	filters := model.StructuredFilter{}
	lower := strings.ToLower(query)

	minPrice, maxPrice, fromUnder := extractPrice(lower)
	filters.MinPrice = minPrice
	filters.MaxPrice = maxPrice

	if m := bedRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			filters.Bedrooms = &n
		}
	}

	filters.Purpose = extractPurpose(lower)

	var category *CategoryMapping
	for i := range p.categories {
		if containsAny(lower, p.categories[i].Keywords) {
			category = &p.categories[i]
			filters.Category = category.ExternalID
			break
		}
	}

	if p.resolver != nil {
		if phrase := extractLocationPhrase(query); phrase != "" {
			candidates, err := p.resolver.Resolve(ctx, phrase)
			if err != nil {
				// Location lookup is best-effort; the parse itself never fails.
				log.Printf("location resolution failed for %q: %v", phrase, err)
			} else if len(candidates) > 0 {
				filters.Location = candidates[0].Name
				filters.LocationExternalID = candidates[0].ExternalID
			}
		}
	}

	return &model.InterpretResult{
		Filters: filters,
		Summary: p.buildSummary(&filters, category, fromUnder),
		URL:     p.buildURL(&filters),
	}, nil
}

// extractPrice recognizes the three price patterns in priority order:
// "under X", "X to Y" and "around X" (the last producing a ±20% band).
// All amounts are rounded to whole currency units.
func extractPrice(lower string) (minPrice, maxPrice *float64, fromUnder bool) {
	if m := underRe.FindStringSubmatch(lower); m != nil {
		v := math.Round(parseAmount(m[1]) * unitScale(m[2]))
		return nil, &v, true
	}
	if m := rangeRe.FindStringSubmatch(lower); m != nil {
		lo := math.Round(parseAmount(m[1]) * unitScale(m[2]))
		hi := math.Round(parseAmount(m[3]) * unitScale(m[4]))
		if lo > hi {
			lo, hi = hi, lo
		}
		return &lo, &hi, false
	}
	if m := aroundRe.FindStringSubmatch(lower); m != nil {
		v := parseAmount(m[1]) * unitScale(m[2])
		lo := math.Round(v * 0.8)
		hi := math.Round(v * 1.2)
		return &lo, &hi, false
	}
	return nil, nil, false
}

func parseAmount(s string) float64 {
	v, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return v
}

func unitScale(unit string) float64 {
	switch strings.ToLower(unit) {
	case "m", "million":
		return 1_000_000
	case "k", "thousand":
		return 1_000
	}
	return 1
}

// extractPurpose maps intent words to a canonical purpose. Rent words win
// when both families appear ("buy to rent out" is a rental search).
func extractPurpose(lower string) string {
	if strings.Contains(lower, "rent") || strings.Contains(lower, "lease") {
		return model.PurposeForRent
	}
	if strings.Contains(lower, "buy") || strings.Contains(lower, "purchase") || strings.Contains(lower, "sale") {
		return model.PurposeForSale
	}
	return ""
}

// extractLocationPhrase captures the words after a trailing "in", cut at
// the first word that belongs to another pattern family.
func extractLocationPhrase(query string) string {
	m := locRe.FindStringSubmatch(query)
	if m == nil {
		return ""
	}
	words := strings.Fields(m[1])
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if locationStopWords[strings.ToLower(w)] {
			break
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// buildSummary renders the one-line description, e.g.
// "2 bedroom apartments for sale in Dubai Marina under AED 1,500,000".
// Unset fields are omitted entirely.
func (p *Interpreter) buildSummary(f *model.StructuredFilter, category *CategoryMapping, fromUnder bool) string {
	parts := []string{}
	if f.Bedrooms != nil {
		parts = append(parts, strconv.Itoa(*f.Bedrooms)+" bedroom")
	}
	if category != nil {
		parts = append(parts, category.Plural)
	} else {
		parts = append(parts, "properties")
	}
	switch f.Purpose {
	case model.PurposeForRent:
		parts = append(parts, "for rent")
	case model.PurposeForSale:
		parts = append(parts, "for sale")
	}
	if f.Location != "" {
		parts = append(parts, "in "+f.Location)
	}
	if fromUnder && f.MaxPrice != nil {
		parts = append(parts, "under "+p.currency+" "+formatAmount(*f.MaxPrice))
	}
	return strings.Join(parts, " ")
}

// buildURL renders the canonical search URL with a fixed parameter order
// and freshness-first sort. url.Values is not used because it sorts keys.
func (p *Interpreter) buildURL(f *model.StructuredFilter) string {
	var b strings.Builder
	b.WriteString("/search?")
	appendParam(&b, "location", f.Location)
	appendParam(&b, "locationExternalID", f.LocationExternalID)
	appendParam(&b, "purpose", f.Purpose)
	appendParam(&b, "category", f.Category)
	if f.Bedrooms != nil {
		appendParam(&b, "rooms", strconv.Itoa(*f.Bedrooms))
	}
	if f.MinPrice != nil {
		appendParam(&b, "minPrice", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		appendParam(&b, "maxPrice", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	appendParam(&b, "page", "0")
	appendParam(&b, "sort", p.sort)
	return b.String()
}

func appendParam(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	if !strings.HasSuffix(b.String(), "?") {
		b.WriteString("&")
	}
	b.WriteString(key)
	b.WriteString("=")
	b.WriteString(url.QueryEscape(value))
}

// formatAmount groups an amount into thousands, e.g. 1500000 -> "1,500,000".
func formatAmount(v float64) string {
	s := strconv.FormatInt(int64(math.Round(v)), 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var out strings.Builder
	for i, ch := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(ch)
	}
	if neg {
		return "-" + out.String()
	}
	return out.String()
}
