package services

import (
	"strings"

	"roamio/internal/models/domain_models"
	"roamio/pkg/utils"
)

// MergeConfig tunes the duplicate-detection heuristics.
type MergeConfig struct {
	// NameSimilarityRatio is the Levenshtein budget as a fraction of the
	// shorter name's length. The 0.30 default can mis-merge very short
	// names; kept configurable pending product input.
	NameSimilarityRatio float64
}

func DefaultMergeConfig() MergeConfig {
	return MergeConfig{NameSimilarityRatio: 0.30}
}

type MergerInterface interface {
	Merge(primary, secondary []domain_models.Place, maxDistanceMeters float64) []domain_models.Place
}

type Merger struct {
	cfg MergeConfig
}

func NewMerger(cfg MergeConfig) MergerInterface {
	if cfg.NameSimilarityRatio <= 0 {
		cfg = DefaultMergeConfig()
	}
	return &Merger{cfg: cfg}
}

// Merge starts from the primary list and appends every secondary place that
// is not a duplicate of an already-included one. A duplicate is a place
// within maxDistanceMeters whose name is similar. O(n*m), fine at tens of
// results per call.
func (m *Merger) Merge(primary, secondary []domain_models.Place, maxDistanceMeters float64) []domain_models.Place {
	merged := make([]domain_models.Place, 0, len(primary)+len(secondary))
	merged = append(merged, primary...)

	for _, candidate := range secondary {
		if m.isDuplicate(candidate, merged, maxDistanceMeters) {
			continue
		}
		merged = append(merged, candidate)
	}

	return merged
}

func (m *Merger) isDuplicate(candidate domain_models.Place, existing []domain_models.Place, maxDistanceMeters float64) bool {
	for _, p := range existing {
		dist := utils.HaversineMeters(candidate.Latitude, candidate.Longitude, p.Latitude, p.Longitude)
		if dist > maxDistanceMeters {
			continue
		}
		if m.namesSimilar(candidate.Name, p.Name) {
			return true
		}
	}
	return false
}

func (m *Merger) namesSimilar(a, b string) bool {
	na := utils.NormalizeName(a)
	nb := utils.NormalizeName(b)

	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}

	shorter := len([]rune(na))
	if l := len([]rune(nb)); l < shorter {
		shorter = l
	}
	budget := int(float64(shorter) * m.cfg.NameSimilarityRatio)
	return utils.LevenshteinDistance(na, nb) <= budget
}
