package pagination

// Page/limit bounds for feed queries. The limit ceiling keeps per-request cost
// predictable; a single page never scans more than MaxLimit candidate rows.
const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// Page is the normalized pagination state for a feed query.
type Page struct {
	Number int
	Limit  int
	Offset int
}

// Normalize clamps raw page/limit values into valid bounds and computes the
// offset. Zero or negative inputs fall back to the defaults; limit is clamped
// to [1, MaxLimit].
func Normalize(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{
		Number: page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// HasMore approximates whether a next page exists: true when this page came
// back full. A full final page yields a false positive, so callers must
// tolerate a subsequent empty page.
func HasMore(returned, limit int) bool {
	return returned == limit
}
