package models

// AnalysisOptions is the explicit configuration surface for the
// normalization pipeline. Every recognized option is a named field; zero
// means "not set" only where a default is documented.
type AnalysisOptions struct {
	ShowBicyclist          bool   `json:"show_bicyclist"`
	ShowPedestrian         bool   `json:"show_pedestrian"`
	ExpansionProfileKey    string `json:"expansion_profile_key"`
	NormalizationFactorKey string `json:"normalization_factor_key"`
	Year                   int    `json:"year,omitempty"`
}

// DefaultAnalysisOptions returns options with both count types active.
// Factor table keys still have to be filled in by the caller.
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{
		ShowBicyclist:  true,
		ShowPedestrian: true,
	}
}

// IncludesType reports whether records of the given type participate.
func (o AnalysisOptions) IncludesType(ct CountType) bool {
	switch ct {
	case CountTypeBike:
		return o.ShowBicyclist
	case CountTypePed:
		return o.ShowPedestrian
	}
	return false
}
