package variant

import (
	"strings"

	"lorad/pkg/types"
)

// Eligible reports whether a classified model qualifies for grouping.
// Merging is a strong claim ("these two files are the same model"), so it is
// only made when three independent identity signals agree: a recognized
// High/Low label, a non-empty normalized key, and declared model id plus base
// model. A lone model with no recognized marker always renders standalone.
func Eligible(m types.Model, c Classification) bool {
	if !strings.EqualFold(c.Label, LabelHigh) && !strings.EqualFold(c.Label, LabelLow) {
		return false
	}
	return c.Key != "" && m.ModelID != "" && m.BaseModel != ""
}
