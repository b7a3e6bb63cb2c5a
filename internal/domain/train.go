package domain

// TrainDetails is one row of the train registry. Depot is the canonical
// depot name used by the depot notification rule.
type TrainDetails struct {
	ID        int64
	TrainNo   string
	TrainName string
	Depot     string
}

// TrainAccessGrant links a staff user to the trains they are authorized
// for. Details carries the raw JSON payload mapping train numbers to
// access windows; it is parsed lazily because individual payloads may be
// malformed without invalidating the rest.
type TrainAccessGrant struct {
	UserID    int64
	Email     string
	FirstName string
	LastName  string
	Details   string
}

// AccessWindow is one date range inside a grant payload. EndDate carries
// either an ISO calendar date or the sentinel "ongoing".
type AccessWindow struct {
	OriginDate string `json:"origin_date"`
	EndDate    string `json:"end_date"`
}
