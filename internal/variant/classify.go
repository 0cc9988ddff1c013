package variant

import (
	"strings"
	"unicode"

	"lorad/pkg/types"
)

// Canonical labels with grouping significance. Any other label (including
// the empty "none" label) marks a model as standalone.
const (
	LabelHigh = "High"
	LabelLow  = "Low"
)

// Classification is the classifier output for one model or raw string.
type Classification struct {
	// Key is the lowercase identity key; empty when nothing usable was found.
	Key string
	// Label is "High", "Low", or "" when no marker was present.
	Label string
}

// markerLabels maps lowercase filename tokens to variant labels. Publishers
// are inconsistent about separators, so the joined forms are included too.
var markerLabels = map[string]string{
	"high":      LabelHigh,
	"highnoise": LabelHigh,
	"low":       LabelLow,
	"lownoise":  LabelLow,
}

// modelExtensions are stripped before tokenizing so the extension never leaks
// into the identity key.
var modelExtensions = []string{".safetensors", ".ckpt", ".pt"}

// tokenize lowercases s, drops a trailing checkpoint extension, and splits on
// every non-alphanumeric rune.
func tokenize(s string) []string {
	s = strings.ToLower(s)
	for _, ext := range modelExtensions {
		s = strings.TrimSuffix(s, ext)
	}
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// detectLabel returns the label of the first marker token in s, or "".
func detectLabel(s string) string {
	for _, tok := range tokenize(s) {
		if lbl, ok := markerLabels[tok]; ok {
			return lbl
		}
	}
	return ""
}

// ClassifyText classifies a raw string such as a filename or version name.
// Marker tokens determine the label (first marker wins) and are excluded from
// the key; the remaining tokens join into a lowercase hyphenated key.
func ClassifyText(s string) Classification {
	toks := tokenize(s)
	var label string
	keep := make([]string, 0, len(toks))
	for _, tok := range toks {
		if lbl, ok := markerLabels[tok]; ok {
			if label == "" {
				label = lbl
			}
			continue
		}
		keep = append(keep, tok)
	}
	return Classification{Key: strings.Join(keep, "-"), Label: label}
}

// ClassifyModel classifies a full model record. Structured fields are
// preferred over filename heuristics because they are less noisy: the label
// is read from the declared version name first, then the declared base model,
// then the safetensor filename; the key derives from the declared name.
// Identical input always yields an identical Classification.
func ClassifyModel(m types.Model) Classification {
	label := detectLabel(m.VersionName)
	if label == "" {
		label = detectLabel(m.BaseModel)
	}
	if label == "" {
		label = detectLabel(m.FileName)
	}
	return Classification{Key: ClassifyText(m.Name).Key, Label: label}
}
