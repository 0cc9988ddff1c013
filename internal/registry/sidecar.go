package registry

import (
	"encoding/json"
	"os"
	"strings"
)

// versionInfo mirrors the subset of the Civitai model-version payload that
// identity derivation reads. Everything else in the sidecar is ignored.
type versionInfo struct {
	ModelID   json.Number `json:"modelId"`
	Name      string      `json:"name"` // version name, e.g. "v1.0 High Noise"
	BaseModel string      `json:"baseModel"`
	Model     struct {
		Name string `json:"name"`
	} `json:"model"`
	Files []struct {
		Name string `json:"name"`
	} `json:"files"`
}

// sidecarSuffixes are tried in order next to each checkpoint file. The
// .civitai.info form is what downloader tools write; a bare .json sidecar is
// the common hand-maintained variant.
var sidecarSuffixes = []string{".civitai.info", ".json"}

// readSidecar loads the metadata sidecar for the checkpoint at path, if any.
// A missing or unparseable sidecar is not an error: the classifier falls back
// to filename heuristics for such files.
func readSidecar(path string) (versionInfo, bool) {
	stem := trimModelExt(path)
	for _, suffix := range sidecarSuffixes {
		b, err := os.ReadFile(stem + suffix)
		if err != nil {
			continue
		}
		var info versionInfo
		if err := json.Unmarshal(b, &info); err != nil {
			continue
		}
		return info, true
	}
	return versionInfo{}, false
}

// trimModelExt drops a trailing checkpoint extension, case-insensitively.
func trimModelExt(path string) string {
	lower := strings.ToLower(path)
	for _, ext := range modelExts {
		if strings.HasSuffix(lower, ext) {
			return path[:len(path)-len(ext)]
		}
	}
	return path
}
