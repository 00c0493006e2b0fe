package demography

import (
	"math"
	"sort"
	"time"

	"github.com/laiyolobaru/backend/internal/domain/shared"
)

// Totals are village-wide population counts
type Totals struct {
	Population int `json:"population"`
	Male       int `json:"male"`
	Female     int `json:"female"`
	Households int `json:"households"`
}

// DusunRow is one line of the per-dusun table
type DusunRow struct {
	Dusun      shared.Dusun `json:"dusun"`
	Label      string       `json:"label"`
	Households int          `json:"households"`
	Male       int          `json:"male"`
	Female     int          `json:"female"`
	Total      int          `json:"total"`
}

// Monografis is the village monograph: profile plus population per dusun.
type Monografis struct {
	Profile   *VillageProfile
	Dusun     []DusunRow
	Totals    Totals
	UpdatedAt time.Time
}

// BreakdownItem is one label within a category
type BreakdownItem struct {
	Label      string  `json:"label"`
	Male       int     `json:"male"`
	Female     int     `json:"female"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// CategoryBreakdown is a category with its labels sorted by total descending
type CategoryBreakdown struct {
	Category StatCategory    `json:"category"`
	Total    int             `json:"total"`
	Items    []BreakdownItem `json:"items"`
}

// Infografis is the aggregated data behind the public infographic page.
type Infografis struct {
	Totals               Totals              `json:"totals"`
	SexRatio             float64             `json:"sex_ratio"`
	AverageHouseholdSize float64             `json:"average_household_size"`
	Dusun                []DusunRow          `json:"dusun"`
	Categories           []CategoryBreakdown `json:"categories"`
}

// BuildMonografis assembles the monograph. Every dusun appears, with zeros when no
// summary has been recorded for it.
func BuildMonografis(profile *VillageProfile, summaries []DusunSummary) Monografis {
	rows, totals, updated := dusunTable(summaries)
	if profile != nil && profile.UpdatedAt.After(updated) {
		updated = profile.UpdatedAt
	}
	return Monografis{
		Profile:   profile,
		Dusun:     rows,
		Totals:    totals,
		UpdatedAt: updated,
	}
}

// BuildInfografis aggregates summaries and statistics. Percentages are relative to the
// category total and rounded to two decimals.
func BuildInfografis(summaries []DusunSummary, stats []PopulationStat) Infografis {
	rows, totals, _ := dusunTable(summaries)

	info := Infografis{
		Totals:     totals,
		Dusun:      rows,
		Categories: make([]CategoryBreakdown, 0, len(AllCategories())),
	}
	if totals.Female > 0 {
		info.SexRatio = round2(float64(totals.Male) / float64(totals.Female) * 100)
	}
	if totals.Households > 0 {
		info.AverageHouseholdSize = round2(float64(totals.Population) / float64(totals.Households))
	}

	byCategory := make(map[StatCategory]map[string]*BreakdownItem)
	for _, s := range stats {
		labels, ok := byCategory[s.Category]
		if !ok {
			labels = make(map[string]*BreakdownItem)
			byCategory[s.Category] = labels
		}
		item, ok := labels[s.Label]
		if !ok {
			item = &BreakdownItem{Label: s.Label}
			labels[s.Label] = item
		}
		item.Male += s.Male
		item.Female += s.Female
		item.Total += s.Total()
	}

	for _, category := range AllCategories() {
		labels, ok := byCategory[category]
		if !ok {
			continue
		}
		breakdown := CategoryBreakdown{Category: category, Items: make([]BreakdownItem, 0, len(labels))}
		for _, item := range labels {
			breakdown.Total += item.Total
			breakdown.Items = append(breakdown.Items, *item)
		}
		for i := range breakdown.Items {
			if breakdown.Total > 0 {
				breakdown.Items[i].Percentage = round2(float64(breakdown.Items[i].Total) / float64(breakdown.Total) * 100)
			}
		}
		sort.Slice(breakdown.Items, func(i, j int) bool {
			if breakdown.Items[i].Total != breakdown.Items[j].Total {
				return breakdown.Items[i].Total > breakdown.Items[j].Total
			}
			return breakdown.Items[i].Label < breakdown.Items[j].Label
		})
		info.Categories = append(info.Categories, breakdown)
	}

	return info
}

func dusunTable(summaries []DusunSummary) ([]DusunRow, Totals, time.Time) {
	byDusun := make(map[shared.Dusun]DusunSummary, len(summaries))
	var updated time.Time
	for _, s := range summaries {
		byDusun[s.Dusun] = s
		if s.UpdatedAt.After(updated) {
			updated = s.UpdatedAt
		}
	}

	var totals Totals
	rows := make([]DusunRow, 0, len(shared.AllDusun()))
	for _, d := range shared.AllDusun() {
		s := byDusun[d]
		row := DusunRow{
			Dusun:      d,
			Label:      d.Label(),
			Households: s.Households,
			Male:       s.Male,
			Female:     s.Female,
			Total:      s.Total(),
		}
		rows = append(rows, row)
		totals.Households += row.Households
		totals.Male += row.Male
		totals.Female += row.Female
	}
	totals.Population = totals.Male + totals.Female
	return rows, totals, updated
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
