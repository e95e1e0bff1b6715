package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/layerroute/pkg/cache"
	lrerrors "github.com/matzehuels/layerroute/pkg/errors"
	"github.com/matzehuels/layerroute/pkg/layered"
	"github.com/matzehuels/layerroute/pkg/observability"
	"github.com/matzehuels/layerroute/pkg/pathfind"
)

// Nodes 1 and 2 share category B, giving two equal structural routes
// 0-1-3 and 0-2-3 plus a same-category shortcut 1-2. Node 4 is reachable
// only through the induced edge 3-4 (categories C and D).
const nodesFile = `5 nodes
0 kind: node L1 | source L2 | A # x
1 kind: node L1 | left L2 | B # x
2 kind: node L1 | right L2 | B # x
3 kind: node L1 | sink L2 | C # x
4 kind: node L1 | spare L2 | D # x
# Number of L1 edges: 4
0 1
1 3
0 2
2 3
`

const categoriesFile = `4
0 encode_level: 2 | A Connected
1 encode_level: 2 | B Connected
2 encode_level: 2 | C Connected
3 encode_level: 2 | D Connected
# number of L2 edges
2 3
`

func writeSources(t *testing.T) BuildOptions {
	t.Helper()
	dir := t.TempDir()
	a := filepath.Join(dir, "1050400_L1-L2_DB.txt")
	b := filepath.Join(dir, "1050400_L2_DB.txt")
	if err := os.WriteFile(a, []byte(nodesFile), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte(categoriesFile), 0644); err != nil {
		t.Fatal(err)
	}
	return BuildOptions{
		NodesPath:      a,
		CategoriesPath: b,
		Weights:        layered.DefaultWeights(),
		GroupLimit:     layered.DefaultGroupLimit,
	}
}

func fileRunner(t *testing.T) (*Runner, *cache.FileCache) {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(c, nil, discardLogger()), c
}

func solveOpts(target int) SolveOptions {
	return SolveOptions{Source: 0, Target: target, K: DefaultK, AugmentedLimit: DefaultK, Format: FormatDOT}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"pdf", false},
		{"svg", false},
		{"png", false},
		{"dot", false},
		{"json", true},
		{"PDF", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !lrerrors.Is(err, lrerrors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, lrerrors.GetCode(err))
		}
	}
}

func TestBuildOptionsValidate(t *testing.T) {
	o := BuildOptions{NodesPath: "dir/77_L1-L2_DB.txt", CategoriesPath: "b.txt"}
	if err := o.Validate(); err != nil {
		t.Fatal(err)
	}
	if o.Prefix != "77" {
		t.Errorf("Prefix = %q, want 77", o.Prefix)
	}
	if o.Weights != layered.DefaultWeights() {
		t.Errorf("Weights = %+v, want defaults", o.Weights)
	}

	for _, bad := range []BuildOptions{{CategoriesPath: "b"}, {NodesPath: "a"}} {
		if err := bad.Validate(); !lrerrors.Is(err, lrerrors.ErrCodeInvalidInput) {
			t.Errorf("Validate(%+v) = %v, want INVALID_INPUT", bad, err)
		}
	}
}

func TestBuildCachesSnapshot(t *testing.T) {
	ctx := context.Background()
	r, c := fileRunner(t)
	opts := writeSources(t)

	first, err := r.Build(ctx, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if first.FromCache || first.Report == nil {
		t.Fatalf("first build FromCache=%v Report=%v", first.FromCache, first.Report)
	}
	if first.Key != "1050400_graph" {
		t.Errorf("Key = %q", first.Key)
	}
	if _, err := os.Stat(filepath.Join(c.Dir(), "1050400_graph.cache")); err != nil {
		t.Errorf("snapshot file missing: %v", err)
	}

	second, err := r.Build(ctx, opts)
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}
	if !second.FromCache || second.Report != nil {
		t.Errorf("second build FromCache=%v Report=%v", second.FromCache, second.Report)
	}
	if !reflect.DeepEqual(first.Graph.Edges(), second.Graph.Edges()) {
		t.Errorf("cached edges = %v, want %v", second.Graph.Edges(), first.Graph.Edges())
	}

	opts.Force = true
	forced, err := r.Build(ctx, opts)
	if err != nil || forced.FromCache {
		t.Errorf("forced build FromCache=%v err=%v", forced.FromCache, err)
	}
}

func TestBuildRecoversFromCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	r, c := fileRunner(t)
	opts := writeSources(t)

	// A well-formed cache entry whose payload is not a snapshot.
	if err := c.Set(ctx, "1050400_graph", []byte(`{"version":1,"data":"AAAA"}`), 0); err != nil {
		t.Fatal(err)
	}

	res, err := r.Build(ctx, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.FromCache {
		t.Fatal("corrupt snapshot was used")
	}

	data, hit, err := c.Get(ctx, "1050400_graph")
	if !hit || err != nil {
		t.Fatalf("rebuilt snapshot missing: %v %v", hit, err)
	}
	if _, err := cache.DecodeSnapshot(data); err != nil {
		t.Errorf("rebuilt snapshot does not decode: %v", err)
	}
}

func TestBuildRebuildsStaleSnapshot(t *testing.T) {
	ctx := context.Background()
	r, _ := fileRunner(t)
	opts := writeSources(t)

	if _, err := r.Build(ctx, opts); err != nil {
		t.Fatal(err)
	}

	// Drop the last structural edge from File A.
	trimmed := strings.TrimSuffix(nodesFile, "2 3\n")
	if err := os.WriteFile(opts.NodesPath, []byte(trimmed), 0644); err != nil {
		t.Fatal(err)
	}
	res, err := r.Build(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.FromCache {
		t.Error("stale snapshot was used")
	}
	if res.Graph.HasEdge(2, 3) {
		t.Error("rebuilt graph still has the removed edge")
	}

	// Different assembly settings make the snapshot stale as well.
	opts.GroupLimit = 1
	res, err = r.Build(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.FromCache || res.Graph.HasEdge(1, 2) {
		t.Errorf("group limit change ignored: FromCache=%v", res.FromCache)
	}
}

func TestBuildErrors(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, discardLogger())
	opts := writeSources(t)

	missing := opts
	missing.NodesPath = filepath.Join(t.TempDir(), "absent.txt")
	if _, err := r.Build(ctx, missing); !lrerrors.Is(err, lrerrors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}

	malformed := opts
	if err := os.WriteFile(malformed.NodesPath, []byte("no count here\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Build(ctx, malformed); !lrerrors.Is(err, lrerrors.ErrCodeMalformedSource) {
		t.Errorf("malformed file error = %v, want MALFORMED_SOURCE", err)
	}
}

func TestSolveDOT(t *testing.T) {
	r, _ := fileRunner(t)
	res, err := r.Solve(context.Background(), writeSources(t), solveOpts(3))
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	wantStructural := []pathfind.Path{{0, 1, 3}, {0, 2, 3}}
	if !reflect.DeepEqual(res.Structural, wantStructural) {
		t.Errorf("Structural = %v, want %v", res.Structural, wantStructural)
	}
	wantAugmented := []pathfind.Path{{0, 1, 2, 3}, {0, 2, 1, 3}}
	if !reflect.DeepEqual(res.Augmented, wantAugmented) {
		t.Errorf("Augmented = %v, want %v", res.Augmented, wantAugmented)
	}

	wantInfo := []string{
		"L1   1: 0->1->3",
		"L1   2: 0->2->3",
		"L1+L2    1: 0->1--2->3",
		"L1+L2    2: 0->2--1->3",
	}
	if !reflect.DeepEqual(res.View.Info, wantInfo) {
		t.Errorf("Info = %q, want %q", res.View.Info, wantInfo)
	}

	if string(res.Artifact) != res.DOT || !strings.HasPrefix(res.DOT, "graph L1_vs_L2 {") {
		t.Errorf("dot artifact = %q", res.Artifact)
	}
	if res.RunID == "" || res.Format != FormatDOT {
		t.Errorf("RunID=%q Format=%q", res.RunID, res.Format)
	}
}

func TestSolveProgress(t *testing.T) {
	r := NewRunner(nil, nil, discardLogger())
	opts := solveOpts(3)
	var stages []string
	opts.Progress = func(stage string) { stages = append(stages, stage) }

	if _, err := r.Solve(context.Background(), writeSources(t), opts); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if want := []string{"build", "search", "render"}; !reflect.DeepEqual(stages, want) {
		t.Errorf("stages = %v, want %v", stages, want)
	}
}

func TestSolveLimits(t *testing.T) {
	r := NewRunner(nil, nil, discardLogger())
	opts := solveOpts(3)
	opts.K = 1
	opts.AugmentedLimit = 1

	res, err := r.Solve(context.Background(), writeSources(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Structural) != 1 {
		t.Errorf("Structural = %v, want one path", res.Structural)
	}
	// The allowed set shrinks to {0,1,3}, which has no augmenting edge.
	if len(res.Augmented) != 0 {
		t.Errorf("Augmented = %v, want none", res.Augmented)
	}
}

func TestSolveWithoutStructuralPath(t *testing.T) {
	r := NewRunner(nil, nil, discardLogger())
	res, err := r.Solve(context.Background(), writeSources(t), solveOpts(4))
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(res.Structural) != 0 || len(res.Augmented) != 0 {
		t.Errorf("paths = %v / %v, want none", res.Structural, res.Augmented)
	}
	if !reflect.DeepEqual(res.View.Info, []string{"L1   none", "L1+L2    none"}) {
		t.Errorf("Info = %q", res.View.Info)
	}
	if !strings.Contains(res.DOT, `"4"`) {
		t.Error("goal node missing from diagram")
	}
}

func TestSolveErrors(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, discardLogger())
	build := writeSources(t)

	tests := []struct {
		name   string
		modify func(*SolveOptions)
		code   lrerrors.Code
	}{
		{"unknown target", func(o *SolveOptions) { o.Target = 99 }, lrerrors.ErrCodeInvalidInput},
		{"negative source", func(o *SolveOptions) { o.Source = -1 }, lrerrors.ErrCodeInvalidInput},
		{"bad format", func(o *SolveOptions) { o.Format = "gif" }, lrerrors.ErrCodeInvalidFormat},
		{"no augmented limit", func(o *SolveOptions) { o.AugmentedLimit = 0 }, lrerrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := solveOpts(3)
			tt.modify(&opts)
			if _, err := r.Solve(ctx, build, opts); !lrerrors.Is(err, tt.code) {
				t.Errorf("Solve() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestSolveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(nil, nil, discardLogger())
	if _, err := r.Solve(ctx, writeSources(t), solveOpts(3)); !errors.Is(err, context.Canceled) {
		t.Errorf("Solve() error = %v, want context.Canceled", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu       sync.Mutex
	searches []string
	renders  []string
	builds   []observability.BuildStats
	cache    []string
}

func (h *recordingHooks) OnBuildComplete(_ context.Context, _ string, s observability.BuildStats, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.builds = append(h.builds, s)
}

func (h *recordingHooks) OnSearchComplete(_ context.Context, kind string, _ int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.searches = append(h.searches, kind)
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, format string, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.renders = append(h.renders, format)
}

func (h *recordingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cache = append(h.cache, "hit")
}

func (h *recordingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cache = append(h.cache, "miss")
}

func TestSolveHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	t.Cleanup(observability.Reset)

	r, _ := fileRunner(t)
	build := writeSources(t)
	for range 2 {
		if _, err := r.Solve(context.Background(), build, solveOpts(3)); err != nil {
			t.Fatal(err)
		}
	}

	if want := []string{"structural", "augmented", "structural", "augmented"}; !reflect.DeepEqual(h.searches, want) {
		t.Errorf("searches = %v, want %v", h.searches, want)
	}
	if want := []string{"dot", "dot"}; !reflect.DeepEqual(h.renders, want) {
		t.Errorf("renders = %v, want %v", h.renders, want)
	}
	if want := []string{"miss", "hit"}; !reflect.DeepEqual(h.cache, want) {
		t.Errorf("cache events = %v, want %v", h.cache, want)
	}
	if len(h.builds) != 2 || h.builds[0].FromCache || !h.builds[1].FromCache {
		t.Fatalf("builds = %+v", h.builds)
	}
	if s := h.builds[0]; s.Nodes != 5 || s.Structural != 4 || s.Induced != 1 || s.SameCategory != 1 {
		t.Errorf("build stats = %+v", s)
	}
}
