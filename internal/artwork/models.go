package artwork

// Record is a validated, display-ready artwork. A record exists only if the
// upstream detail had a non-empty title, artist and primary image; anything
// else was dropped by the normalizer.
type Record struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Artist         string `json:"artist"`
	Date           string `json:"date"` // free-form, "Unknown" when absent
	Classification string `json:"classification,omitempty"`
	ImageURL       string `json:"imageUrl"`
}

// EraCount is one bar of the era histogram.
type EraCount struct {
	Era   string `json:"era"`
	Count int    `json:"count"`
}

// SearchResult is the presenter view for one artwork search: the retained
// records in their original candidate order plus the era histogram.
type SearchResult struct {
	Query    string     `json:"query"`
	Count    int        `json:"count"`
	Artworks []Record   `json:"artworks"`
	Eras     []EraCount `json:"eras,omitempty"`
}
