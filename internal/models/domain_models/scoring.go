package domain_models

import "time"

// ScoringMode selects between the baseline geographic ranker and the
// personalized hybrid scorer.
type ScoringMode int

const (
	ScoringModeBaseline ScoringMode = iota
	ScoringModePersonalized
)

func (m ScoringMode) String() string {
	if m == ScoringModePersonalized {
		return "personalized"
	}
	return "baseline"
}

// ScoreComponent is one (score, weight) pair of the hybrid breakdown.
// Score is normalized to [0,1]; the weight comes from configuration.
type ScoreComponent struct {
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

func (c ScoreComponent) Contribution() float64 {
	return c.Score * c.Weight
}

// ScoreBreakdown holds the five hybrid scoring dimensions.
type ScoreBreakdown struct {
	Implicit ScoreComponent `json:"implicit"`
	Explicit ScoreComponent `json:"explicit"`
	Novelty  ScoreComponent `json:"novelty"`
	Context  ScoreComponent `json:"context"`
	Quality  ScoreComponent `json:"quality"`
}

func (b ScoreBreakdown) FinalScore() float64 {
	return b.Implicit.Contribution() +
		b.Explicit.Contribution() +
		b.Novelty.Contribution() +
		b.Context.Contribution() +
		b.Quality.Contribution()
}

// NamedComponent pairs a dimension name with its component, in a stable order
// the explainer can rank by contribution.
type NamedComponent struct {
	Name      string
	Component ScoreComponent
}

func (b ScoreBreakdown) Components() []NamedComponent {
	return []NamedComponent{
		{Name: "implicit", Component: b.Implicit},
		{Name: "explicit", Component: b.Explicit},
		{Name: "novelty", Component: b.Novelty},
		{Name: "context", Component: b.Context},
		{Name: "quality", Component: b.Quality},
	}
}

// ScoredPlace is a place with its personalized score and 2-4 human readable
// reasons. Breakdown is attached only in debug mode.
type ScoredPlace struct {
	Place      Place           `json:"place"`
	FinalScore float64         `json:"final_score"`
	Reasons    []string        `json:"reasons"`
	Breakdown  *ScoreBreakdown `json:"breakdown,omitempty"`
}

// ScoringContext carries the request-time signals the context engine and the
// quality dimension use. Weather and season arrive from the caller; this
// service does not perform weather lookups itself.
type ScoringContext struct {
	UserLat   float64
	UserLng   float64
	TimeOfDay string
	Weather   string
	Season    string
	LocalTime time.Time
}

// TasteProfile is the declared preference vector used by the explicit scorer
// and the explainer.
type TasteProfile struct {
	UserID             string
	Interests          map[string]float64
	QualityPreference  float64
	CalmnessPreference float64
	FavoriteCuisines   []string
	FavoriteActivities []string
}
