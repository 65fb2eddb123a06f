package models

// Provider is a worker or company that can fulfil service bookings.
type Provider struct {
	ID            string   `bson:"id" json:"id"`
	Name          string   `bson:"name" json:"name"`
	CategoryID    string   `bson:"categoryId" json:"categoryId"`
	ServiceIDs    []string `bson:"serviceIds" json:"serviceIds"`
	Phone         string   `bson:"phone,omitempty" json:"phone,omitempty"`
	Rating        float64  `bson:"rating,omitempty" json:"rating,omitempty"`
	CompletedJobs int      `bson:"completedJobs,omitempty" json:"completedJobs,omitempty"`
	Active        bool     `bson:"active" json:"active"`
}

// ServiceContext carries the service selection a capacity check is scoped
// to: which services are in the cart and their category.
type ServiceContext struct {
	ServiceIDs []string `json:"serviceIds"`
	CategoryID string   `json:"categoryId"`
	Units      int      `json:"units"`
}

// SeriesResult is the outcome of probing an entire occurrence series.
// Conflicts holds the dates that failed, in series order.
type SeriesResult struct {
	OK               bool     `json:"ok"`
	ConflictingDates []string `json:"conflictingDates,omitempty"`
	Advisory         string   `json:"advisory,omitempty"` // soft warning when lookups degraded to unknown
}
