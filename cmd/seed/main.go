package main

import (
	"context"
	"log"

	"agrocredit/config"
	"agrocredit/database"
	"agrocredit/entities"
	"agrocredit/pkg/ai"
	farmerRepoImp "agrocredit/pkg/farmer/repositoryImp"
	loanRepoImp "agrocredit/pkg/loan/repositoryImp"
	loanSvcImp "agrocredit/pkg/loan/serviceImp"
	"agrocredit/pkg/scoring/engine"
	scoringRepoImp "agrocredit/pkg/scoring/repositoryImp"
	scoringSvcImp "agrocredit/pkg/scoring/serviceImp"
)

func fptr(v float64) *float64 { return &v }

// Seeds a small demo portfolio and scores every farmer once.
func main() {
	cfg := config.Load()
	db := database.OpenSQLite(cfg.DBPath)

	fRepo := farmerRepoImp.New(db)
	sRepo := scoringRepoImp.New(db)
	lRepo := loanRepoImp.New(db)
	eng := engine.New(nil)
	lSvc := loanSvcImp.New(lRepo, sRepo, eng)
	sSvc := scoringSvcImp.NewScoringService(fRepo, sRepo, eng, ai.NewMock(), nil)

	type seedFarm struct {
		farm       entities.Farm
		crops      []entities.Crop
		machines   []entities.Machinery
		structures []entities.FarmStructure
		geometry   *entities.FarmGeometry
		loan       *entities.LoanRequest
	}
	type seedRow struct {
		farmer entities.Farmer
		farms  []seedFarm
	}

	rows := []seedRow{
		{
			farmer: entities.Farmer{FarmerKey: "demo-orchard-01", Age: 44, EducationLevel: "bachelor", FarmingExperienceYears: 18, RepaymentScore: 82},
			farms: []seedFarm{{
				farm: entities.Farm{FarmSizeAcres: 741.3, OwnershipStatus: "owned", LandValuationUSD: 950000, SoilQualityIndex: 78, WaterAvailabilityScore: 70, IrrigationType: "drip"},
				crops: []entities.Crop{
					{CropType: "apple orchard", YieldHistoryTonnes: []float64{310, 325, 298, 340, 330}, ExpectedYieldNextSeason: 345, CertifiedSeeds: true, UseFertilizers: true},
					{CropType: "wheat", YieldHistoryTonnes: []float64{120, 115, 130, 122, 128}, ExpectedYieldNextSeason: 125, UseFertilizers: true},
				},
				machines: []entities.Machinery{
					{Name: "tractor", Model: "JD 6155M", BuildYear: 2021, Condition: "good"},
					{Name: "sprayer", Model: "Amazone UX", BuildYear: 2019, Condition: "good"},
				},
				structures: []entities.FarmStructure{
					{Type: "warehouse", AreaSqm: 450, LegalStatus: "registered"},
					{Type: "cold storage", AreaSqm: 180, LegalStatus: "registered"},
				},
				geometry: &entities.FarmGeometry{Vertices: 9, PolygonQuality: "surveyed"},
				loan:     &entities.LoanRequest{Purpose: "cold storage expansion", RequestedAmount: 120000, TermMonths: 48, ExpectedCashFlow: fptr(260000)},
			}},
		},
		{
			farmer: entities.Farmer{FarmerKey: "demo-grain-02", Age: 36, EducationLevel: "secondary", FarmingExperienceYears: 9, NumberOfLoans: 1, RepaymentScore: 64},
			farms: []seedFarm{{
				farm: entities.Farm{FarmSizeAcres: 185.2, OwnershipStatus: "rented", LandValuationUSD: 210000, SoilQualityIndex: 55, WaterAvailabilityScore: 40, IrrigationType: "rainfed"},
				crops: []entities.Crop{
					{CropType: "corn", YieldHistoryTonnes: []float64{88, 92, 79, 95, 90}, ExpectedYieldNextSeason: 93, UseFertilizers: true},
				},
				machines: []entities.Machinery{
					{Name: "tractor", Model: "MTZ-82", BuildYear: 2004, Condition: "worn"},
				},
				structures: []entities.FarmStructure{
					{Type: "machine shed", AreaSqm: 120, LegalStatus: "in_process"},
				},
				loan: &entities.LoanRequest{Purpose: "working capital", RequestedAmount: 35000, TermMonths: 24, ExpectedCashFlow: fptr(70000)},
			}},
		},
		{
			farmer: entities.Farmer{FarmerKey: "demo-vineyard-03", Age: 52, EducationLevel: "bachelor", FarmingExperienceYears: 27, RepaymentScore: 91},
			farms: []seedFarm{{
				farm: entities.Farm{FarmSizeAcres: 98.8, OwnershipStatus: "owned", LandValuationUSD: 480000, SoilQualityIndex: 85, WaterAvailabilityScore: 75, IrrigationType: "drip"},
				crops: []entities.Crop{
					{CropType: "vineyard", YieldHistoryTonnes: []float64{42, 45, 38, 47, 44}, ExpectedYieldNextSeason: 46, CertifiedSeeds: true, UseFertilizers: true},
					{CropType: "vegetables", YieldHistoryTonnes: []float64{15, 18, 16, 19, 17}, ExpectedYieldNextSeason: 18, UseFertilizers: true},
				},
				machines: []entities.Machinery{
					{Name: "vineyard tractor", Model: "Fendt 211V", BuildYear: 2022, Condition: "excellent"},
					{Name: "harvester", Model: "Gregoire GL7", BuildYear: 2018, Condition: "good"},
				},
				structures: []entities.FarmStructure{
					{Type: "winery", AreaSqm: 300, LegalStatus: "registered"},
					{Type: "greenhouse", AreaSqm: 150, LegalStatus: "unregistered"},
				},
				geometry: &entities.FarmGeometry{Vertices: 14, PolygonQuality: "surveyed"},
			}},
		},
	}

	for _, row := range rows {
		if existing, err := fRepo.FindByKey(row.farmer.FarmerKey); err == nil {
			log.Printf("seed: %s already present (farmer %d), skipping", existing.FarmerKey, existing.FarmerID)
			continue
		}
		f := row.farmer
		if err := fRepo.Create(&f); err != nil {
			log.Fatalf("seed farmer %s: %v", f.FarmerKey, err)
		}
		for _, fs := range row.farms {
			farm := fs.farm
			farm.FarmerID = f.FarmerID
			if err := fRepo.CreateFarm(&farm); err != nil {
				log.Fatalf("seed farm for %s: %v", f.FarmerKey, err)
			}
			for i := range fs.crops {
				fs.crops[i].FarmID = farm.FarmID
			}
			if len(fs.crops) > 0 {
				if err := fRepo.CreateCrops(fs.crops); err != nil {
					log.Fatalf("seed crops: %v", err)
				}
			}
			for i := range fs.machines {
				fs.machines[i].FarmID = farm.FarmID
			}
			if len(fs.machines) > 0 {
				if err := fRepo.CreateMachinery(fs.machines); err != nil {
					log.Fatalf("seed machinery: %v", err)
				}
			}
			for i := range fs.structures {
				fs.structures[i].FarmID = farm.FarmID
			}
			if len(fs.structures) > 0 {
				if err := fRepo.CreateStructures(fs.structures); err != nil {
					log.Fatalf("seed structures: %v", err)
				}
			}
			if fs.geometry != nil {
				fs.geometry.FarmID = farm.FarmID
				if err := fRepo.CreateGeometry(fs.geometry); err != nil {
					log.Fatalf("seed geometry: %v", err)
				}
			}
			if fs.loan != nil {
				fs.loan.FarmID = farm.FarmID
				if err := lSvc.Create(fs.loan); err != nil {
					log.Fatalf("seed loan: %v", err)
				}
			}
		}
		out, err := sSvc.ComputeAndStore(context.Background(), f.FarmerID)
		if err != nil {
			log.Fatalf("seed scoring for %s: %v", f.FarmerKey, err)
		}
		log.Printf("seed: %s scored %d/100 at %.0f%%", f.FarmerKey, out.Result.TotalScore, out.Result.InterestRate*100)
	}
	log.Printf("seed: done")
}
