package models

// Review is a customer review for a catalog entry. Photos are inline
// data URLs (at most six per review). Date is unix milliseconds, matching
// the format of the mirrored comentarios.json document.
type Review struct {
	Rating  int      `json:"rating"`
	Comment string   `json:"comment"`
	Photos  []string `json:"photos"`
	Date    int64    `json:"date"`
	Name    string   `json:"name"`
}

// ReviewListResponse is the payload for GET /reviews/{entryId}.
type ReviewListResponse struct {
	EntryID string   `json:"entryId"`
	Reviews []Review `json:"reviews"`
}

// BannerState is the collapsed/expanded state of the promotional banner,
// persisted per session.
type BannerState struct {
	Collapsed bool `json:"collapsed"`
}
