package match

// Fixed vote weight constants. Any pass may scale within this range.
const (
	WeightWeak       = 1
	WeightMedium     = 2
	WeightStrong     = 3
	WeightVeryStrong = 5
)

// Kind discriminates the three symbol kinds the Merge Engine tracks.
type Kind string

const (
	KindClass  Kind = "class"
	KindMethod Kind = "method"
	KindField  Kind = "field"
)
