package imager

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/kataras/figma-tokens/pkg/figma"
)

func TestCollect(t *testing.T) {
	hidden := false
	root := figma.Node{
		ID:   "0:0",
		Type: figma.NodeDocument,
		Children: []figma.Node{
			{
				ID:   "0:1",
				Name: "Components",
				Type: figma.NodeCanvas,
				Children: []figma.Node{
					{ID: "5:1", Name: "Button", Type: figma.NodeComponent},
				},
			},
			{
				ID:   "0:2",
				Name: "Assets",
				Type: figma.NodeCanvas,
				Children: []figma.Node{
					{
						ID:   "1:1",
						Name: " icons ",
						Type: figma.NodeFrame,
						Children: []figma.Node{
							{ID: "2:1", Name: "Arrow Left", Type: figma.NodeComponent},
							{ID: "2:2", Name: "Group", Type: figma.NodeGroup, Children: []figma.Node{
								{ID: "3:1", Name: "Close", Type: figma.NodeComponent},
							}},
							{ID: "2:3", Name: "Draft", Type: figma.NodeComponent, Visible: &hidden},
							{ID: "2:4", Name: "Helper", Type: figma.NodeRectangle},
						},
					},
				},
			},
		},
	}

	tests := []struct {
		name    string
		frame   string
		wantIDs []string
	}{
		{name: "case-insensitive frame match", frame: "Icons", wantIDs: []string{"2:1", "3:1"}},
		{name: "missing frame", frame: "Logos"},
		{name: "empty frame name", frame: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Collect(&root, tt.frame, Icon)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Collect() returned %d targets, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].NodeID != id {
					t.Errorf("Collect()[%d].NodeID = %q, want %q", i, got[i].NodeID, id)
				}
				if got[i].Kind != Icon {
					t.Errorf("Collect()[%d].Kind = %q, want %q", i, got[i].Kind, Icon)
				}
			}
		})
	}
}

func TestBuildBaseName(t *testing.T) {
	tests := []struct {
		name     string
		nodeName string
		nodeID   string
		want     string
	}{
		{name: "simple", nodeName: "Arrow Left", want: "arrow-left"},
		{name: "separators collapse", nodeName: "icon / close__small", want: "icon-close-small"},
		{name: "variant name keeps values", nodeName: "Name=Arrow, Size=24", want: "arrow-24"},
		{name: "empty name uses node id", nodeName: "", nodeID: "12:34", want: "12-34"},
		{name: "nothing usable", nodeName: "!!!", want: "asset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildBaseName(tt.nodeName, tt.nodeID); got != tt.want {
				t.Errorf("buildBaseName(%q, %q) = %q, want %q", tt.nodeName, tt.nodeID, got, tt.want)
			}
		})
	}
}

func TestFileNames_Collisions(t *testing.T) {
	got := fileNames([]Target{
		{Name: "Arrow", Kind: Icon},
		{Name: "arrow", Kind: Icon},
		{Name: "Arrow", Kind: Logo},
		{Name: "ARROW", Kind: Icon},
	}, "svg")
	want := []string{"arrow.svg", "arrow-2.svg", "arrow.svg", "arrow-3.svg"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fileNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	tests := []struct {
		name  string
		nodes []string
		want  []string
	}{
		{name: "numbered name after duplicates", nodes: []string{"Arrow", "Arrow", "Arrow 2"}, want: []string{"arrow.svg", "arrow-2.svg", "arrow-2-2.svg"}},
		{name: "numbered name first", nodes: []string{"Arrow 2", "Arrow", "Arrow"}, want: []string{"arrow-2.svg", "arrow.svg", "arrow-3.svg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets := make([]Target, len(tt.nodes))
			for i, n := range tt.nodes {
				targets[i] = Target{Name: n, Kind: Icon}
			}
			got := fileNames(targets, "svg")
			seen := make(map[string]bool)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("fileNames()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
				if seen[got[i]] {
					t.Errorf("fileNames() issued %q twice", got[i])
				}
				seen[got[i]] = true
			}
		})
	}
}

type fakeRenderer struct {
	mu       sync.Mutex
	batches  [][]string
	missing  map[string]bool
	failures map[string]bool
}

func (f *fakeRenderer) GetImages(_ context.Context, _ string, ids []string, format string, _ float64) (*figma.ImagesResponse, error) {
	f.mu.Lock()
	f.batches = append(f.batches, ids)
	f.mu.Unlock()

	resp := &figma.ImagesResponse{Images: map[string]string{}}
	for _, id := range ids {
		if f.missing[id] {
			resp.Images[id] = ""
			continue
		}
		resp.Images[id] = "https://cdn.test/" + id + "." + format
	}
	return resp, nil
}

func (f *fakeRenderer) Download(_ context.Context, url string) ([]byte, error) {
	id := strings.TrimSuffix(strings.TrimPrefix(url, "https://cdn.test/"), ".svg")
	if f.failures[id] {
		return nil, errors.New("boom")
	}
	return []byte("<svg id=\"" + id + "\"/>"), nil
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	r := &fakeRenderer{
		missing:  map[string]bool{"1:3": true},
		failures: map[string]bool{"1:4": true},
	}
	targets := []Target{
		{NodeID: "1:1", Name: "Arrow", Kind: Icon},
		{NodeID: "1:2", Name: "Brand", Kind: Logo},
		{NodeID: "1:3", Name: "Missing", Kind: Icon},
		{NodeID: "1:4", Name: "Broken", Kind: Icon},
		{NodeID: "1:5", Name: "Close", Kind: Icon},
	}

	result, err := Export(context.Background(), r, "KEY", targets, ExportConfig{OutputDir: dir})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if len(result.Errors) != 2 {
		t.Errorf("Export() returned %d errors, want 2: %v", len(result.Errors), result.Errors)
	}

	var paths []string
	for _, a := range result.Icons {
		paths = append(paths, a.Path)
	}
	sort.Strings(paths)
	if strings.Join(paths, ",") != "icons/arrow.svg,icons/close.svg" {
		t.Errorf("icon paths = %v", paths)
	}
	if len(result.Logos) != 1 || result.Logos[0].Path != "logos/brand.svg" {
		t.Fatalf("logos = %+v", result.Logos)
	}

	content := []byte(`<svg id="1:2"/>`)
	sum := sha256.Sum256(content)
	if result.Logos[0].Hash != hex.EncodeToString(sum[:]) {
		t.Errorf("logo hash = %s", result.Logos[0].Hash)
	}
	if result.Logos[0].Size != int64(len(content)) {
		t.Errorf("logo size = %d", result.Logos[0].Size)
	}

	written, err := os.ReadFile(filepath.Join(dir, "logos", "brand.svg"))
	if err != nil {
		t.Fatalf("read exported logo: %v", err)
	}
	if string(written) != string(content) {
		t.Errorf("exported logo = %q", written)
	}
}

func TestExport_Batches(t *testing.T) {
	r := &fakeRenderer{}
	targets := make([]Target, 0, 250)
	for i := 0; i < 250; i++ {
		targets = append(targets, Target{NodeID: "n" + string(rune('a'+i%26)) + strings.Repeat("x", i/26), Name: "icon", Kind: Icon})
	}

	result, err := Export(context.Background(), r, "KEY", targets, ExportConfig{Workers: 8})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(r.batches) != 3 {
		t.Errorf("images requests = %d, want 3", len(r.batches))
	}
	if len(result.Icons) != 250 {
		t.Errorf("icons = %d, want 250", len(result.Icons))
	}
	if result.Icons[1].Path != "icons/icon-2.svg" {
		t.Errorf("second icon path = %q, want icons/icon-2.svg", result.Icons[1].Path)
	}
}
