package domain

// Review lives embedded in its flight's review list and has no
// lifecycle of its own. IDs are random, not sequence-derived, so that
// concurrent additions never need to coordinate to stay unique.
type Review struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Comment  string `json:"comment"`
	Star     int    `json:"star"`
}

// FlightReview is a review annotated with its parent flight number,
// used by the cross-flight review listing.
type FlightReview struct {
	Review
	FlightNumber string `json:"flight_number"`
}
