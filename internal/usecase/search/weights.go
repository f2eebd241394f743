package search

// Weights holds the scoring constants of the structured engine. The original
// deployment had these literals scattered over near-identical handlers; here
// they are one named configuration.
type Weights struct {
	IndustryExact    float64
	IndustryPartial  float64
	KeywordExact     float64
	KeywordPartial   float64
	KeywordBonus     float64
	DescriptionHit   float64
	DescriptionBonus float64
}

// DefaultWeights returns the production scoring constants.
func DefaultWeights() Weights {
	return Weights{
		IndustryExact:    100,
		IndustryPartial:  50,
		KeywordExact:     30,
		KeywordPartial:   15,
		KeywordBonus:     5,
		DescriptionHit:   20,
		DescriptionBonus: 5,
	}
}
