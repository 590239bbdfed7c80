package controllerImp

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"agrocredit/entities"
	"agrocredit/pkg/farmer/repository"
	"agrocredit/pkg/scoring/types"
)

type FarmerCtrl struct{ repo repository.FarmerRepository }

func New(repo repository.FarmerRepository) *FarmerCtrl { return &FarmerCtrl{repo} }

type createFarmerReq struct {
	FarmerKey              string `json:"farmer_key"`
	Age                    int    `json:"age"`
	EducationLevel         string `json:"education_level"`
	FarmingExperienceYears int    `json:"farming_experience_years"`
	NumberOfLoans          int    `json:"number_of_loans"`
	PastDefaults           int    `json:"past_defaults"`
	RepaymentScore         int    `json:"repayment_score"`
}

func (h *FarmerCtrl) Create(c echo.Context) error {
	var req createFarmerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if strings.TrimSpace(req.FarmerKey) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "farmer_key is required"})
	}
	f := &entities.Farmer{
		FarmerKey:              strings.TrimSpace(req.FarmerKey),
		Age:                    req.Age,
		EducationLevel:         req.EducationLevel,
		FarmingExperienceYears: req.FarmingExperienceYears,
		NumberOfLoans:          req.NumberOfLoans,
		PastDefaults:           req.PastDefaults,
		RepaymentScore:         req.RepaymentScore,
	}
	if err := h.repo.Create(f); err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, f)
}

type createFarmReq struct {
	FarmSizeAcres          float64 `json:"farm_size_acres"`
	OwnershipStatus        string  `json:"ownership_status"`
	LandValuationUSD       float64 `json:"land_valuation_usd"`
	SoilQualityIndex       int     `json:"soil_quality_index"`
	WaterAvailabilityScore int     `json:"water_availability_score"`
	IrrigationType         string  `json:"irrigation_type"`
	CropRotationYears      int     `json:"crop_rotation_years"`

	Crops []struct {
		CropType                string    `json:"crop_type"`
		YieldHistoryTonnes      []float64 `json:"yield_history_tonnes"`
		ExpectedYieldNextSeason float64   `json:"expected_yield_next_season"`
		CertifiedSeeds          bool      `json:"certified_seeds"`
		UseFertilizers          bool      `json:"use_fertilizers"`
	} `json:"crops"`
	Machinery []struct {
		Name      string `json:"name"`
		Model     string `json:"model"`
		BuildYear int    `json:"build_year"`
		Condition string `json:"condition"`
	} `json:"machinery"`
	Structures []struct {
		Type        string  `json:"type"`
		AreaSqm     float64 `json:"area_sqm"`
		LegalStatus string  `json:"legal_status"`
	} `json:"structures"`
	Geometry *struct {
		Vertices       int    `json:"vertices"`
		PolygonQuality string `json:"polygon_quality"`
		Coordinates    string `json:"coordinates"`
	} `json:"geometry"`
	MarketAccess *struct {
		DistanceToMarketKM float64 `json:"distance_to_market_km"`
		StorageFacilities  bool    `json:"storage_facilities"`
		ContractFarming    bool    `json:"contract_farming"`
		SupplyChainScore   int     `json:"supply_chain_score"`
	} `json:"market_access"`
	Technology *struct {
		MechanizationLevel string `json:"mechanization_level"`
		PrecisionTools     bool   `json:"precision_tools"`
		FinancialSoftware  bool   `json:"financial_software"`
		DronesSatellite    bool   `json:"drones_satellite"`
	} `json:"technology"`
	Insurance *struct {
		CropInsurance    bool    `json:"crop_insurance"`
		SumAssuredUSD    float64 `json:"sum_assured_usd"`
		PastClaims       int     `json:"past_claims"`
		WeatherInsurance bool    `json:"weather_insurance"`
	} `json:"insurance"`
}

// CreateFarm accepts the full farm payload in one request; nested sections
// are optional and written after the farm row so child rows get the farm id.
func (h *FarmerCtrl) CreateFarm(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad farmer id"})
	}
	if _, err := h.repo.FindByID(uint(id)); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "farmer not found"})
	}

	var req createFarmReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.FarmSizeAcres <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "farm_size_acres must be positive"})
	}

	farm := &entities.Farm{
		FarmerID:               uint(id),
		FarmSizeAcres:          req.FarmSizeAcres,
		OwnershipStatus:        req.OwnershipStatus,
		LandValuationUSD:       req.LandValuationUSD,
		SoilQualityIndex:       req.SoilQualityIndex,
		WaterAvailabilityScore: req.WaterAvailabilityScore,
		IrrigationType:         req.IrrigationType,
		CropRotationYears:      req.CropRotationYears,
	}
	if err := h.repo.CreateFarm(farm); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	if len(req.Crops) > 0 {
		crops := make([]entities.Crop, len(req.Crops))
		for i, cr := range req.Crops {
			crops[i] = entities.Crop{
				FarmID:                  farm.FarmID,
				CropType:                cr.CropType,
				YieldHistoryTonnes:      cr.YieldHistoryTonnes,
				ExpectedYieldNextSeason: cr.ExpectedYieldNextSeason,
				CertifiedSeeds:          cr.CertifiedSeeds,
				UseFertilizers:          cr.UseFertilizers,
			}
		}
		if err := h.repo.CreateCrops(crops); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}
	if len(req.Machinery) > 0 {
		machines := make([]entities.Machinery, len(req.Machinery))
		for i, m := range req.Machinery {
			machines[i] = entities.Machinery{FarmID: farm.FarmID, Name: m.Name, Model: m.Model, BuildYear: m.BuildYear, Condition: m.Condition}
		}
		if err := h.repo.CreateMachinery(machines); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}
	if len(req.Structures) > 0 {
		structures := make([]entities.FarmStructure, len(req.Structures))
		for i, st := range req.Structures {
			structures[i] = entities.FarmStructure{FarmID: farm.FarmID, Type: st.Type, AreaSqm: st.AreaSqm, LegalStatus: st.LegalStatus}
		}
		if err := h.repo.CreateStructures(structures); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}
	if req.Geometry != nil {
		g := &entities.FarmGeometry{FarmID: farm.FarmID, Vertices: req.Geometry.Vertices, PolygonQuality: req.Geometry.PolygonQuality, Coordinates: req.Geometry.Coordinates}
		if err := h.repo.CreateGeometry(g); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}
	if req.MarketAccess != nil {
		m := &entities.MarketAccess{FarmID: farm.FarmID, DistanceToMarketKM: req.MarketAccess.DistanceToMarketKM, StorageFacilities: req.MarketAccess.StorageFacilities, ContractFarming: req.MarketAccess.ContractFarming, SupplyChainScore: req.MarketAccess.SupplyChainScore}
		if err := h.repo.CreateMarketAccess(m); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}
	if req.Technology != nil {
		t := &entities.TechnologyUsage{FarmID: farm.FarmID, MechanizationLevel: req.Technology.MechanizationLevel, PrecisionTools: req.Technology.PrecisionTools, FinancialSoftware: req.Technology.FinancialSoftware, DronesSatellite: req.Technology.DronesSatellite}
		if err := h.repo.CreateTechnology(t); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}
	if req.Insurance != nil {
		ins := &entities.Insurance{FarmID: farm.FarmID, CropInsurance: req.Insurance.CropInsurance, SumAssuredUSD: req.Insurance.SumAssuredUSD, PastClaims: req.Insurance.PastClaims, WeatherInsurance: req.Insurance.WeatherInsurance}
		if err := h.repo.CreateInsurance(ins); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}
	return c.JSON(http.StatusCreated, farm)
}

func (h *FarmerCtrl) Get(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	f, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "farmer not found"})
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FarmerCtrl) Profile(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	p, err := h.repo.CompleteProfile(uint(id))
	if err != nil {
		if errors.Is(err, types.ErrFarmerNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "farmer not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, p)
}

func (h *FarmerCtrl) List(c echo.Context) error {
	fs, err := h.repo.All()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, fs)
}
