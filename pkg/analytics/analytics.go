// Package analytics derives yard utilization figures from the placed
// container set.
package analytics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/izzat1998/terminal-pro-sub004/pkg/placement"
)

// ZoneStats summarizes one storage zone.
type ZoneStats struct {
	Zone       string  `json:"zone"`
	Containers int     `json:"containers"`
	Laden      int     `json:"laden"`
	Empty      int     `json:"empty"`
	Hazmat     int     `json:"hazmat"`
	MaxTier    int     `json:"max_tier"`
	Share      float64 `json:"share"` // fraction of all placed containers
	MeanDwell  float64 `json:"mean_dwell_days"`
	P90Dwell   float64 `json:"p90_dwell_days"`
}

// YardStats is the full utilization summary.
type YardStats struct {
	TotalContainers int         `json:"total_containers"`
	TotalLaden      int         `json:"total_laden"`
	TotalHazmat     int         `json:"total_hazmat"`
	MeanDwell       float64     `json:"mean_dwell_days"`
	P90Dwell        float64     `json:"p90_dwell_days"`
	Zones           []ZoneStats `json:"zones"`
}

// Summarize computes per-zone and overall statistics. Containers
// without joined domain data count toward totals but not toward the
// laden/dwell figures.
func Summarize(containers []placement.ContainerPosition) *YardStats {
	stats := &YardStats{}
	byZone := make(map[string]*ZoneStats)
	dwellByZone := make(map[string][]float64)
	var allDwell []float64

	for _, c := range containers {
		zs := byZone[c.Zone]
		if zs == nil {
			zs = &ZoneStats{Zone: c.Zone}
			byZone[c.Zone] = zs
		}
		zs.Containers++
		stats.TotalContainers++
		if c.Tier > zs.MaxTier {
			zs.MaxTier = c.Tier
		}
		if c.Data == nil {
			continue
		}
		if c.Data.Status == placement.StatusLaden {
			zs.Laden++
			stats.TotalLaden++
		} else {
			zs.Empty++
		}
		if c.Data.Hazmat {
			zs.Hazmat++
			stats.TotalHazmat++
		}
		dwellByZone[c.Zone] = append(dwellByZone[c.Zone], c.Data.DwellDays)
		allDwell = append(allDwell, c.Data.DwellDays)
	}

	for zone, zs := range byZone {
		zs.MeanDwell, zs.P90Dwell = dwellFigures(dwellByZone[zone])
		zs.Share = float64(zs.Containers) / float64(stats.TotalContainers)
		stats.Zones = append(stats.Zones, *zs)
	}
	sort.Slice(stats.Zones, func(i, j int) bool {
		return stats.Zones[i].Zone < stats.Zones[j].Zone
	})
	stats.MeanDwell, stats.P90Dwell = dwellFigures(allDwell)
	return stats
}

func dwellFigures(days []float64) (mean, p90 float64) {
	if len(days) == 0 {
		return 0, 0
	}
	sort.Float64s(days)
	return stat.Mean(days, nil), stat.Quantile(0.9, stat.Empirical, days, nil)
}
