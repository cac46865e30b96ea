// Package query turns a record snapshot plus request parameters into a
// filtered, sorted, paginated view.
//
// The engine is pure: it receives a snapshot (already copied by the
// store), reorders and slices it, and never touches store state. The
// three stages run in a fixed order — filter, sort, paginate — and the
// reported total counts the filtered set before the window is applied,
// so clients can render page controls.
package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/campus-labs/student-registry/internal/types"
)

// Defaults applied when limit/page are missing or not numeric.
const (
	DefaultLimit = 10
	DefaultPage  = 1
)

// Params is the parsed query-parameter set for a listing request.
// Nil GPA bounds mean the filter is inactive; empty Name/Major/Sort
// strings likewise.
type Params struct {
	MinGPA *float64
	MaxGPA *float64
	Name   string
	Major  string
	Sort   string
	Order  string // "asc" or "desc"
	Limit  int
	Page   int
}

// Result is the windowed view returned to the client.
// Total counts records after filtering, before pagination.
type Result struct {
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Data  []types.Record `json:"data"`
}

// ParseParams reads the recognized query parameters out of values.
// Malformed numeric values never error: a non-numeric GPA bound
// deactivates that filter, a non-numeric limit/page falls back to its
// default. Numeric limit/page values below 1 are clamped to 1.
func ParseParams(values url.Values) Params {
	p := Params{
		Name:  values.Get("name"),
		Major: values.Get("major"),
		Sort:  values.Get("sort"),
		Order: "asc",
		Limit: DefaultLimit,
		Page:  DefaultPage,
	}

	if v, err := strconv.ParseFloat(values.Get("minGpa"), 64); err == nil {
		p.MinGPA = &v
	}
	if v, err := strconv.ParseFloat(values.Get("maxGpa"), 64); err == nil {
		p.MaxGPA = &v
	}
	if values.Get("order") == "desc" {
		p.Order = "desc"
	}
	if n, err := strconv.Atoi(values.Get("limit")); err == nil {
		p.Limit = max(n, 1)
	}
	if n, err := strconv.Atoi(values.Get("page")); err == nil {
		p.Page = max(n, 1)
	}

	return p
}

// Run applies the filter, sort, and pagination stages to the snapshot.
// An out-of-range page yields an empty Data slice with Total intact.
func Run(records []types.Record, p Params) Result {
	filtered := filter(records, p)

	if p.Sort != "" {
		sortRecords(filtered, p.Sort, p.Order == "desc")
	}

	// Limit and page are client-controlled and may be as large as an
	// int allows, so the window arithmetic must not multiply before
	// checking bounds: (page-1)*limit can overflow to a negative start.
	// Dividing instead keeps the check exact, and any page beyond the
	// last one falls through to the empty window.
	data := make([]types.Record, 0, min(p.Limit, len(filtered)))
	if p.Page-1 <= (len(filtered)-1)/p.Limit {
		start := (p.Page - 1) * p.Limit
		end := min(start+p.Limit, len(filtered))
		data = append(data, filtered[start:end]...)
	}

	return Result{
		Total: len(filtered),
		Page:  p.Page,
		Limit: p.Limit,
		Data:  data,
	}
}

// filter keeps records passing every active predicate. Predicates
// commute, so the order here is arbitrary.
func filter(records []types.Record, p Params) []types.Record {
	out := make([]types.Record, 0, len(records))
	for _, rec := range records {
		if p.MinGPA != nil && rec.GPA < *p.MinGPA {
			continue
		}
		if p.MaxGPA != nil && rec.GPA > *p.MaxGPA {
			continue
		}
		if p.Name != "" && !containsFold(rec.Name, p.Name) {
			continue
		}
		if p.Major != "" && !containsFold(rec.Major, p.Major) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// sortRecords orders records by the named field, in place and stably,
// so records that compare equal keep their relative order from the
// filter stage. Records missing the sort field (nil age) tie with one
// another and go last whatever the direction — the nil check sits
// outside the desc negation, so descending order flips the values, not
// the missing-field placement. Under an unrecognized field name every
// record compares equal. Ties are defined behaviour, not an error.
func sortRecords(records []types.Record, field string, desc bool) {
	// collate gives locale-aware string ordering ("a" < "B", accents
	// fold) where byte comparison would sort all uppercase first.
	// A Collator is not safe for concurrent use, hence one per call.
	coll := collate.New(language.English)

	cmp := func(a, b types.Record) int {
		switch field {
		case "id":
			return compareInt64(a.ID, b.ID)
		case "gpa":
			return compareFloat(a.GPA, b.GPA)
		case "age":
			return compareInt64(int64(*a.Age), int64(*b.Age))
		case "name":
			return coll.CompareString(a.Name, b.Name)
		case "major":
			return coll.CompareString(a.Major, b.Major)
		case "email":
			return coll.CompareString(a.Email, b.Email)
		case "indexNumber":
			return coll.CompareString(a.IndexNumber, b.IndexNumber)
		case "enrollmentDate":
			// YYYY-MM-DD sorts chronologically as text.
			return coll.CompareString(a.EnrollmentDate, b.EnrollmentDate)
		default:
			return 0
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if field == "age" {
			switch {
			case a.Age == nil:
				return false
			case b.Age == nil:
				return true
			}
		}
		c := cmp(a, b)
		if desc {
			c = -c
		}
		return c < 0
	})
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
