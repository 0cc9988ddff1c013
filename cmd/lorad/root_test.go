package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lorad/internal/config"
	"lorad/pkg/types"
)

func writeFixture(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		"wan_character_high.safetensors":  "",
		"wan_character_high.civitai.info": `{"modelId":123,"name":"High","baseModel":"WanVideo","model":{"name":"Wan Character"}}`,
		"wan_character_low.safetensors":   "",
		"wan_character_low.civitai.info":  `{"modelId":123,"name":"Low","baseModel":"WanVideo","model":{"name":"Wan Character"}}`,
		"loose_style.safetensors":         "",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestScanCmdJSON(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir)

	cmd := newScanCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--json", dir})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	var resp types.CardsResponse
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(resp.Cards) != 2 {
		t.Fatalf("cards = %d", len(resp.Cards))
	}
}

func TestScanCmdTable(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir)

	cmd := newScanCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{dir})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Wan Character") || !strings.Contains(got, "High,Low") {
		t.Fatalf("unexpected table output:\n%s", got)
	}
}

func TestScanCmdRequiresArgs(t *testing.T) {
	cmd := newScanCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected usage error")
	}
}

func TestMergeConfig(t *testing.T) {
	dst := config.Config{Addr: ":8080", ModelDirs: []string{"~/loras"}, LogLevel: "info"}
	mergeConfig(&dst, config.Config{Addr: ":9090", CORSEnabled: true})
	if dst.Addr != ":9090" || !dst.CORSEnabled {
		t.Fatalf("unexpected merge: %+v", dst)
	}
	// Unset fields keep their defaults.
	if dst.LogLevel != "info" || len(dst.ModelDirs) != 1 {
		t.Fatalf("defaults clobbered: %+v", dst)
	}
}
