package types

// Moment is the posting window the remote service announces for a region.
type Moment struct {
	ID        string `json:"id"`
	Region    Region `json:"region"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}
