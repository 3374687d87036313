package types

// Filter represents query parameters for filtering and pagination.
type Filter struct {
	Search string `json:"search,omitempty"`
	Limit  uint64 `json:"limit"`
	Offset uint64 `json:"offset"`
}

// Pagination represents pagination metadata returned alongside list bodies.
type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}
