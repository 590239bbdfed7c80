package entities

// FarmerProfile is the full aggregate the scoring workflow loads per
// farmer. Everything here is read-only to the scoring engine.
type FarmerProfile struct {
	Farmer Farmer       `json:"farmer"`
	Farms  []FarmDetail `json:"farms"`
}

type FarmDetail struct {
	Farm         Farm             `json:"farm"`
	Crops        []Crop           `json:"crops"`
	Machinery    []Machinery      `json:"machinery"`
	Structures   []FarmStructure  `json:"structures"`
	Geometry     *FarmGeometry    `json:"geometry,omitempty"`
	MarketAccess *MarketAccess    `json:"market_access,omitempty"`
	Technology   *TechnologyUsage `json:"technology,omitempty"`
	Insurance    *Insurance       `json:"insurance,omitempty"`
	LoanRequests []LoanRequest    `json:"loan_requests"` // newest first
}
