package types

// Seed is the raw per-file input record consumed by the merge engine.
// One Seed is built per discovered checkpoint file; Seeds are immutable and
// consumed exactly once per merge run.
type Seed struct {
	// Underlying model metadata record.
	Model Model `json:"model"`
	// Root folder the model was discovered under.
	SourcePath string `json:"source_path"`
	// Immediate containing folder, may equal SourcePath.
	FolderPath string `json:"folder_path,omitempty"`
	// Slash-joined path used to place the card in a folder tree.
	TreePath string `json:"tree_path,omitempty"`
	// TreePath split into segments; pass-through for tree construction.
	TreeSegments []string `json:"tree_segments,omitempty"`
}

// Variant is one selectable entry on a card: a label such as "High" or "Low"
// and the model file that carries it.
type Variant struct {
	// Variant label, canonical values are "High" and "Low".
	// example: High
	Label string `json:"label" example:"High"`
	// Model behind this variant.
	Model Model `json:"model"`
}

// CardEntry is the externally visible, merged-or-standalone unit of display.
// For a merged pair the Variants list carries every sibling and Model is the
// highest-priority one; for a standalone file Variants has at most one entry.
type CardEntry struct {
	// Selected/default model shown on the card.
	Model Model `json:"model"`
	// Copied from the Seed that first created this entry.
	SourcePath   string   `json:"source_path"`
	FolderPath   string   `json:"folder_path,omitempty"`
	TreePath     string   `json:"tree_path,omitempty"`
	TreeSegments []string `json:"tree_segments,omitempty"`
	// Ordered variant list: High before Low before anything else.
	Variants []Variant `json:"variants"`
}
