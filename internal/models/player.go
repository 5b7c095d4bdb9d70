package models

// Stat bucket names. Every metric belongs to exactly one bucket.
const (
	BucketTotal   = "total"
	BucketAverage = "average"
	BucketPercent = "percent"
)

// Player is one entry of the population snapshot. Loaded once at startup and
// never mutated afterwards; request-scoped enrichment (percentiles, fit
// tables) lives in separate values returned alongside the player.
type Player struct {
	ID   int    `json:"id"`
	WyID int    `json:"wyId"`
	Name string `json:"name"`

	// Biography
	Age                int    `json:"age"`
	Height             int    `json:"height"`
	Weight             int    `json:"weight"`
	Foot               string `json:"foot"`
	Nationality        string `json:"nationality"`
	Club               string `json:"club"`
	ContractExpiration string `json:"contract_expiration"`

	// Ordered list of position codes; the first element is the primary one.
	Positions []string `json:"positions"`

	// Raw statistic buckets. Values are numeric or absent, never NaN.
	Total   map[string]float64 `json:"total"`
	Average map[string]float64 `json:"average"`
	Percent map[string]float64 `json:"percent"`
}

// PrimaryPosition returns the first listed position code, or "" when the
// snapshot carries no position for the player.
func (p *Player) PrimaryPosition() string {
	if len(p.Positions) == 0 {
		return ""
	}
	return p.Positions[0]
}

// Stat returns the raw value for a bucket/metric pair.
func (p *Player) Stat(bucket, metric string) (float64, bool) {
	var m map[string]float64
	switch bucket {
	case BucketTotal:
		m = p.Total
	case BucketAverage:
		m = p.Average
	case BucketPercent:
		m = p.Percent
	default:
		return 0, false
	}
	v, ok := m[metric]
	return v, ok
}

// MinutesOnField reads the cumulative minutes from the total bucket.
func (p *Player) MinutesOnField() float64 {
	v := p.Total["minutesOnField"]
	return v
}

// FlatStats merges all three buckets into one metric->value map. Used by the
// comparison engine, which operates on raw values regardless of bucket.
func (p *Player) FlatStats() map[string]float64 {
	flat := make(map[string]float64, len(p.Total)+len(p.Average)+len(p.Percent))
	for k, v := range p.Total {
		flat[k] = v
	}
	for k, v := range p.Average {
		flat[k] = v
	}
	for k, v := range p.Percent {
		flat[k] = v
	}
	return flat
}

// HasPosition reports whether the player lists the given position code.
func (p *Player) HasPosition(code string) bool {
	for _, pos := range p.Positions {
		if pos == code {
			return true
		}
	}
	return false
}
