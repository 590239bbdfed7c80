package engine

import (
	"time"

	"agrocredit/entities"
	"agrocredit/pkg/scoring/types"
)

// BuildFeatures projects a farmer aggregate into a flat feature record.
// The first farm of the profile is the one scored; when a farm has several
// crops, the farm area is split evenly among them later in the engine (the
// schema records no per-crop area).
func BuildFeatures(p *entities.FarmerProfile) (types.FeatureRecord, error) {
	if p == nil || len(p.Farms) == 0 {
		return types.FeatureRecord{}, types.ErrIncompleteProfile
	}
	farm := p.Farms[0]

	rec := types.FeatureRecord{
		FarmerKey: p.Farmer.FarmerKey,
		FarmID:    farm.Farm.FarmID,
		FarmAcres: farm.Farm.FarmSizeAcres,
		Ownership: farm.Farm.OwnershipStatus,
	}

	currentYear := time.Now().Year()
	for _, m := range farm.Machinery {
		age := 0
		if m.BuildYear > 0 {
			age = currentYear - m.BuildYear
		}
		rec.Machinery = append(rec.Machinery, types.MachineryFeature{
			AgeYears:  age,
			Condition: m.Condition,
		})
	}

	for _, c := range farm.Crops {
		rec.Crops = append(rec.Crops, types.CropFeature{
			Type:           c.CropType,
			ExpectedYield:  c.ExpectedYieldNextSeason,
			CertifiedSeeds: c.CertifiedSeeds,
			UseFertilizers: c.UseFertilizers,
		})
	}

	for _, s := range farm.Structures {
		rec.Structures = append(rec.Structures, types.StructureFeature{
			AreaSqm:     s.AreaSqm,
			LegalStatus: s.LegalStatus,
		})
	}

	if farm.Geometry != nil {
		rec.HasGeometry = true
		rec.GeometryVertices = farm.Geometry.Vertices
	}

	if len(farm.LoanRequests) > 0 {
		latest := farm.LoanRequests[0]
		loan := &types.LoanFeature{
			Amount:     latest.RequestedAmount,
			TermMonths: latest.TermMonths,
		}
		if latest.ExpectedCashFlow != nil {
			loan.ExpectedAnnualCashFlow = *latest.ExpectedCashFlow
		}
		rec.Loan = loan
	}

	return rec, nil
}
