package models

import "strings"

// SearchParameters is the structured form of a natural-language scouting
// query, as extracted by the language model. Statistical parameters are flat
// "min_<metric>"/"max_<metric>" flags; a flag counts as active only when its
// value is neither false, nil nor an empty list.
type SearchParameters struct {
	PositionCodes       []string `json:"position_codes"`
	KeyDescriptionWords []string `json:"key_description_word"`

	// Basic filters
	MinAge             int    `json:"min_age,omitempty"`
	MaxAge             int    `json:"max_age,omitempty"`
	MinHeight          int    `json:"min_height,omitempty"`
	MaxHeight          int    `json:"max_height,omitempty"`
	MinWeight          int    `json:"min_weight,omitempty"`
	MaxWeight          int    `json:"max_weight,omitempty"`
	Foot               string `json:"foot,omitempty"`
	ContractExpiration string `json:"contract_expiration,omitempty"`

	// Statistical flags keyed "min_<metric>" or "max_<metric>", e.g.
	// "min_defensiveDuelsWon": true. The metric's bucket comes from the
	// static metric->bucket map.
	Stats map[string]any `json:"stats,omitempty"`
}

// ActiveStatParams returns the statistical parameter names whose value is
// truthy, in no particular order.
func (sp *SearchParameters) ActiveStatParams() []string {
	var active []string
	for name, value := range sp.Stats {
		if isTruthy(value) {
			active = append(active, name)
		}
	}
	return active
}

// StatParamMetric splits a "min_x"/"max_x" parameter name into its direction
// prefix and metric name. The second return is false for unprefixed names.
func StatParamMetric(param string) (prefix, metric string, ok bool) {
	switch {
	case strings.HasPrefix(param, "min_"):
		return "min", strings.TrimPrefix(param, "min_"), true
	case strings.HasPrefix(param, "max_"):
		return "max", strings.TrimPrefix(param, "max_"), true
	}
	return "", param, false
}

func isTruthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		return t != "" && !strings.EqualFold(t, "false")
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	}
	return true
}
