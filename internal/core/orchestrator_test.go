package core

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JonMunkholm/deces/internal/logging"
)

// fakeReporter records calls and can fail or panic for chosen names.
type fakeReporter struct {
	mu      sync.Mutex
	calls   map[string]int
	failFor string
	panicOn string

	active    atomic.Int32
	maxActive atomic.Int32
	delay     time.Duration
}

func (f *fakeReporter) Report(ctx context.Context, rs ResultSet) (string, error) {
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		cur := f.maxActive.Load()
		if n <= cur || f.maxActive.CompareAndSwap(cur, n) {
			break
		}
	}
	time.Sleep(f.delay)

	f.mu.Lock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[rs.FamilyName]++
	f.mu.Unlock()

	switch rs.FamilyName {
	case f.failFor:
		return "", errors.New("disk full")
	case f.panicOn:
		panic("boom")
	}
	return "noms " + rs.FamilyName + ".xlsx", nil
}

func snapshotOf(names ...string) *Snapshot {
	rows := make([][]string, len(names))
	for i, n := range names {
		rows[i] = []string{n + "*X/", "1", "19300101", "20200101", "75012"}
	}
	return NewSnapshot(&Table{
		Index: MakeHeaderIndex([]string{"nomprenom", "sexe", "datenaiss", "datedeces", "lieudeces"}),
		Rows:  rows,
	})
}

func newTestRunner(rep Reporter, source Source, cfg RunnerConfig) *Runner {
	tr := NewTransformer(testReferences(), nil, PolicyLenient)
	return NewRunner(NewSearcher(source, tr), rep, cfg)
}

func TestRun_ResultsInInputOrder(t *testing.T) {
	rep := &fakeReporter{}
	names := []string{"Vert", "Detronde", "Grandi"}
	r := newTestRunner(rep, snapshotOf("VERT", "GRANDI"), RunnerConfig{Workers: 2})

	results, err := r.Run(context.Background(), names)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != len(names) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(names))
	}
	for i, name := range names {
		if results[i].FamilyName != name {
			t.Errorf("results[%d].FamilyName = %q, want %q", i, results[i].FamilyName, name)
		}
	}

	if !results[0].Written() || results[0].Path != "noms Vert.xlsx" {
		t.Errorf("Vert result = %+v, want written", results[0])
	}
	if results[1].Written() || results[1].Records != 0 || results[1].Err != nil {
		t.Errorf("Detronde result = %+v, want empty without error", results[1])
	}
	if rep.calls["Detronde"] != 0 {
		t.Error("reporter should not be called for an empty result set")
	}

	sum := Summarize(results)
	if sum != (Summary{Written: 2, Empty: 1}) {
		t.Errorf("Summarize() = %+v", sum)
	}
}

func TestRun_IsolatesFailures(t *testing.T) {
	rep := &fakeReporter{failFor: "Vert", panicOn: "Roturier"}
	names := []string{"Vert", "Roturier", "Grandi"}
	r := newTestRunner(rep, snapshotOf("VERT", "ROTURIER", "GRANDI"), RunnerConfig{Workers: 3})

	results, err := r.Run(context.Background(), names)
	if err != nil {
		t.Fatalf("Run() error = %v, want isolated failures", err)
	}
	if results[0].Err == nil {
		t.Error("Vert should fail")
	}
	if !errors.Is(results[1].Err, ErrTaskPanic) {
		t.Errorf("Roturier error = %v, want ErrTaskPanic", results[1].Err)
	}
	if !results[2].Written() {
		t.Errorf("Grandi result = %+v, want written", results[2])
	}
	if sum := Summarize(results); sum.Failed != 2 || sum.Written != 1 {
		t.Errorf("Summarize() = %+v", sum)
	}
}

func TestRun_FailFast(t *testing.T) {
	rep := &fakeReporter{failFor: "Vert"}
	r := newTestRunner(rep, snapshotOf("VERT", "GRANDI"), RunnerConfig{Workers: 1, FailFast: true})

	results, err := r.Run(context.Background(), []string{"Vert", "Grandi"})
	if err == nil {
		t.Fatal("Run() expected error in fail-fast mode")
	}
	if !errors.Is(results[1].Err, context.Canceled) {
		t.Errorf("Grandi error = %v, want context.Canceled", results[1].Err)
	}
}

func TestRun_BoundedConcurrency(t *testing.T) {
	rep := &fakeReporter{delay: 20 * time.Millisecond}
	names := []string{"A", "B", "C", "D", "E", "F"}
	r := newTestRunner(rep, snapshotOf(names...), RunnerConfig{Workers: 2})

	if _, err := r.Run(context.Background(), names); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := rep.maxActive.Load(); got > 2 {
		t.Errorf("max concurrent reports = %d, want <= 2", got)
	}
	for _, n := range names {
		if rep.calls[n] != 1 {
			t.Errorf("calls[%s] = %d, want 1", n, rep.calls[n])
		}
	}
}

func TestRun_LogsWrittenPath(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logging.New(&buf, "debug", "json"))
	defer slog.SetDefault(prev)

	r := newTestRunner(&fakeReporter{}, snapshotOf("VERT"), RunnerConfig{Workers: 1})
	if _, err := r.Run(context.Background(), []string{"Vert"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"msg":"report written"`, `"path":"noms Vert.xlsx"`, `"family_name":"Vert"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}

func TestNewRunner_DefaultWorkers(t *testing.T) {
	r := NewRunner(nil, nil, RunnerConfig{})
	if r.cfg.Workers != DefaultWorkers {
		t.Errorf("Workers = %d, want %d", r.cfg.Workers, DefaultWorkers)
	}
}
