package sources

// Canonical passenger-mix labels the pipeline prices independently.
const (
	MixOneAdult   = "1 adult"
	MixTwoAdults  = "2 adults"
	MixAdultChild = "adult+child"
)

// mixCounts maps a canonical mix label to the traveler counts a source
// request needs. Unknown labels fall back to a single adult so the fetch
// still succeeds; the normalizer flags the label downstream.
func mixCounts(mix string) (adults, children int) {
	switch mix {
	case MixTwoAdults:
		return 2, 0
	case MixAdultChild:
		return 1, 1
	default:
		return 1, 0
	}
}
