package rules

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// YieldCoefficient maps a crop-type keyword to a base income coefficient.
// Matching is case-insensitive substring (keyword in crop type), first
// entry wins, so order is significant.
type YieldCoefficient struct {
	Keyword string
	Value   float64
}

type RateTier struct {
	MinScore   int
	AnnualRate float64
}

type Table struct {
	yields       []YieldCoefficient
	defaultYield float64
	tiers        []RateTier // sorted by MinScore descending
}

// Default returns the compiled-in tables. Keep the yield entries in this
// order: matching stops at the first keyword found in the crop type.
func Default() *Table {
	return &Table{
		yields: []YieldCoefficient{
			{"vineyard", 2.0},
			{"grape", 2.0},
			{"orchard", 1.5},
			{"fruit", 1.5},
			{"vegetable", 3.0},
			{"greenhouse", 3.0},
			{"grain", 1.0},
			{"wheat", 1.0},
			{"corn", 1.0},
			{"barley", 1.0},
		},
		defaultYield: 0.8,
		tiers: []RateTier{
			{80, 0.20},
			{65, 0.24},
			{50, 0.28},
			{0, 0.32},
		},
	}
}

// LoadFromFiles builds a table from operator-editable files, falling back
// to the defaults for anything not provided. Empty paths are skipped; a
// missing override workbook is not an error.
func LoadFromFiles(yieldCSV, tierCSV, overrideXLSX string) (*Table, error) {
	t := Default()

	if yieldCSV != "" {
		if err := t.loadYieldsCSV(yieldCSV); err != nil {
			return nil, err
		}
	}
	if tierCSV != "" {
		if err := t.loadTiersCSV(tierCSV); err != nil {
			return nil, err
		}
	}
	if overrideXLSX != "" {
		_ = t.loadOverridesXLSX(overrideXLSX)
	}

	if len(t.tiers) == 0 {
		return nil, errors.New("no rate tiers loaded")
	}
	return t, nil
}

// YieldFor returns the base income coefficient for a crop type. Unmatched
// types get the default coefficient.
func (t *Table) YieldFor(cropType string) float64 {
	ct := strings.ToLower(strings.TrimSpace(cropType))
	for _, y := range t.yields {
		if strings.Contains(ct, y.Keyword) {
			return y.Value
		}
	}
	return t.defaultYield
}

// RateFor maps a total score to an annual interest rate. Tiers are
// boundary-inclusive: a score equal to MinScore gets that tier's rate.
func (t *Table) RateFor(totalScore int) float64 {
	for _, tier := range t.tiers {
		if totalScore >= tier.MinScore {
			return tier.AnnualRate
		}
	}
	return t.tiers[len(t.tiers)-1].AnnualRate
}

func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

func headerIndex(head []string, aliases ...string) int {
	hmap := map[string]int{}
	for i, h := range head {
		hmap[norm(h)] = i
	}
	for _, a := range aliases {
		if idx, ok := hmap[norm(a)]; ok {
			return idx
		}
	}
	return -1
}

func (t *Table) loadYieldsCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	head, err := cr.Read()
	if err != nil {
		return err
	}
	cKey := headerIndex(head, "Keyword", "crop", "crop_type", "croptype")
	cVal := headerIndex(head, "Coefficient", "base_value", "value", "yield")
	if cKey == -1 || cVal == -1 {
		return fmt.Errorf("base yield csv missing columns, found headers: %v", head)
	}

	loaded := make([]YieldCoefficient, 0, 16)
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if cKey >= len(rec) || cVal >= len(rec) {
			continue
		}
		kw := strings.ToLower(strings.TrimSpace(rec[cKey]))
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[cVal]), 64)
		if kw == "" || err != nil || v <= 0 {
			continue // skip invalid rows
		}
		loaded = append(loaded, YieldCoefficient{Keyword: kw, Value: v})
	}
	if len(loaded) > 0 {
		t.yields = loaded
	}
	return nil
}

func (t *Table) loadTiersCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	head, err := cr.Read()
	if err != nil {
		return err
	}
	cMin := headerIndex(head, "MinScore", "min", "score_from", "threshold")
	cRate := headerIndex(head, "AnnualRate", "rate", "interest_rate")
	if cMin == -1 || cRate == -1 {
		return fmt.Errorf("rate tier csv missing columns, found headers: %v", head)
	}

	loaded := make([]RateTier, 0, 8)
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if cMin >= len(rec) || cRate >= len(rec) {
			continue
		}
		min, err1 := strconv.Atoi(strings.TrimSpace(rec[cMin]))
		rate, err2 := strconv.ParseFloat(strings.TrimSpace(rec[cRate]), 64)
		if err1 != nil || err2 != nil || rate <= 0 {
			continue
		}
		loaded = append(loaded, RateTier{MinScore: min, AnnualRate: rate})
	}
	if len(loaded) > 0 {
		sort.Slice(loaded, func(i, j int) bool { return loaded[i].MinScore > loaded[j].MinScore })
		t.tiers = loaded
	}
	return nil
}

// loadOverridesXLSX reads a "BaseYields" sheet (keyword, coefficient) and
// prepends the rows so regional overrides win over the defaults.
func (t *Table) loadOverridesXLSX(path string) error {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer x.Close()

	rows, err := x.GetRows("BaseYields")
	if err != nil {
		return err
	}
	var overrides []YieldCoefficient
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue // header / short row
		}
		kw := strings.ToLower(strings.TrimSpace(row[0]))
		v, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if kw == "" || err != nil || v <= 0 {
			continue
		}
		overrides = append(overrides, YieldCoefficient{Keyword: kw, Value: v})
	}
	if len(overrides) > 0 {
		t.yields = append(overrides, t.yields...)
	}
	return nil
}
