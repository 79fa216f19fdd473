package gst

// HomeStateCode is the seller's fixed GST state code.
const HomeStateCode = "24"

// Classifier decides intra- vs inter-state supply against a home state code.
type Classifier struct {
	HomeState string
}

// NewClassifier returns a Classifier for homeState, defaulting to HomeStateCode.
func NewClassifier(homeState string) Classifier {
	if homeState == "" {
		homeState = HomeStateCode
	}
	return Classifier{HomeState: homeState}
}

// IsIntraState reports whether the counterparty GSTIN is registered in the home state.
// Malformed input (empty or shorter than two characters) is treated as inter-state.
func (c Classifier) IsIntraState(gstin string) bool {
	code := StateCode(gstin)
	return code != "" && code == c.HomeState
}

// IsIntraState classifies gstin against HomeStateCode.
func IsIntraState(gstin string) bool {
	return NewClassifier(HomeStateCode).IsIntraState(gstin)
}

// StateCode returns the two-character state prefix of a GSTIN, or "" if too short.
func StateCode(gstin string) string {
	if len(gstin) < 2 {
		return ""
	}
	return gstin[:2]
}
