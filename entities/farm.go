package entities

import "time"

type Farm struct {
	FarmID   uint    `gorm:"primaryKey" json:"farm_id"`
	FarmerID uint    `gorm:"index" json:"farmer_id"`
	FarmSizeAcres    float64 `json:"farm_size_acres"`
	OwnershipStatus  string  `json:"ownership_status"` // owned|rented|leased|other
	LandValuationUSD float64 `json:"land_valuation_usd"`
	SoilQualityIndex       int    `json:"soil_quality_index"`       // 0..100
	WaterAvailabilityScore int    `json:"water_availability_score"` // 0..100
	IrrigationType         string `json:"irrigation_type"`
	CropRotationYears      int    `json:"crop_rotation_years"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Crop struct {
	CropID   uint   `gorm:"primaryKey" json:"crop_id"`
	FarmID   uint   `gorm:"index" json:"farm_id"`
	CropType string `json:"crop_type"`
	YieldHistoryTonnes      []float64 `gorm:"serializer:json" json:"yield_history_tonnes"` // last 5 seasons
	ExpectedYieldNextSeason float64   `json:"expected_yield_next_season"`
	CertifiedSeeds          bool      `json:"certified_seeds"`
	UseFertilizers          bool      `json:"use_fertilizers"`
	CreatedAt time.Time
}

type Machinery struct {
	MachineID uint   `gorm:"primaryKey" json:"machine_id"`
	FarmID    uint   `gorm:"index" json:"farm_id"`
	Name      string `json:"name"`
	Model     string `json:"model"`
	BuildYear int    `json:"build_year"`
	Condition string `json:"condition"`
	CreatedAt time.Time
}

type FarmStructure struct {
	StructureID uint    `gorm:"primaryKey" json:"structure_id"`
	FarmID      uint    `gorm:"index" json:"farm_id"`
	Type        string  `json:"type"`
	AreaSqm     float64 `json:"area_sqm"`
	LegalStatus string  `json:"legal_status"` // registered|unregistered|in_process|other
	CreatedAt   time.Time
}

type FarmGeometry struct {
	GeometryID     uint   `gorm:"primaryKey" json:"geometry_id"`
	FarmID         uint   `gorm:"uniqueIndex" json:"farm_id"`
	Vertices       int    `json:"vertices"`
	PolygonQuality string `json:"polygon_quality"`
	Coordinates    string `json:"coordinates,omitempty"` // GeoJSON text, not used by scoring
	CreatedAt      time.Time
}

type MarketAccess struct {
	MarketAccessID     uint    `gorm:"primaryKey" json:"market_access_id"`
	FarmID             uint    `gorm:"uniqueIndex" json:"farm_id"`
	DistanceToMarketKM float64 `json:"distance_to_market_km"`
	StorageFacilities  bool    `json:"storage_facilities"`
	ContractFarming    bool    `json:"contract_farming"`
	SupplyChainScore   int     `json:"supply_chain_score"`
	CreatedAt          time.Time
}

type TechnologyUsage struct {
	TechnologyID       uint   `gorm:"primaryKey" json:"technology_id"`
	FarmID             uint   `gorm:"uniqueIndex" json:"farm_id"`
	MechanizationLevel string `json:"mechanization_level"`
	PrecisionTools     bool   `json:"precision_tools"`
	FinancialSoftware  bool   `json:"financial_software"`
	DronesSatellite    bool   `json:"drones_satellite"`
	CreatedAt          time.Time
}

type Insurance struct {
	InsuranceID      uint    `gorm:"primaryKey" json:"insurance_id"`
	FarmID           uint    `gorm:"uniqueIndex" json:"farm_id"`
	CropInsurance    bool    `json:"crop_insurance"`
	SumAssuredUSD    float64 `json:"sum_assured_usd"`
	PastClaims       int     `json:"past_claims"`
	WeatherInsurance bool    `json:"weather_insurance"`
	CreatedAt        time.Time
}
