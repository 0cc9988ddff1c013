package types

// Model represents one LoRA checkpoint file on disk together with the
// identity fields declared by its sidecar metadata. All declared fields may
// be empty when no sidecar was found; consumers must tolerate sparse records.
type Model struct {
	// Declared Civitai model id. Empty when unknown.
	// example: 123456
	ModelID string `json:"model_id,omitempty" example:"123456"`
	// Human-friendly model name from metadata, or the filename stem.
	// example: Wan Character
	Name string `json:"name" example:"Wan Character"`
	// Declared model-version name.
	// example: v1.0 High Noise
	VersionName string `json:"version_name,omitempty" example:"v1.0 High Noise"`
	// Declared base model the LoRA was trained against.
	// example: WanVideo
	BaseModel string `json:"base_model,omitempty" example:"WanVideo"`
	// Safetensor filename as declared by metadata (or the on-disk name).
	// example: wan_character_high.safetensors
	FileName string `json:"file_name" example:"wan_character_high.safetensors"`
	// Absolute path to the checkpoint file on disk.
	// example: /home/user/loras/wan/wan_character_high.safetensors
	Path string `json:"path" example:"/home/user/loras/wan/wan_character_high.safetensors"`
	// File size in bytes, zero when not stat-able.
	// example: 152436736
	SizeBytes int64 `json:"size_bytes,omitempty" example:"152436736"`
}
