package detector

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenilsonani/dupefinder/internal/config"
	"github.com/fenilsonani/dupefinder/internal/progress"
	"github.com/fenilsonani/dupefinder/internal/testutil"
)

func newTestDetector() *Detector {
	return New(config.GetDefault())
}

// groupFor returns the group containing path, or nil
func groupFor(result *Result, path string) *Group {
	normalized := normalizePath(path)
	for _, g := range result.Groups {
		for _, p := range g.Paths {
			if p == normalized {
				return g
			}
		}
	}
	return nil
}

func TestScanFindsDuplicatePair(t *testing.T) {
	f := testutil.NewFixture(t)
	doc := f.CreateFile("a/doc.txt", []byte("hello"))
	copy := f.CreateFile("b/doc_copy.txt", []byte("hello"))
	other := f.CreateFile("c/other.txt", []byte("world"))

	result, err := newTestDetector().Scan(context.Background(), f.RootDir)
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, result.Status)
	require.Equal(t, 1, result.GroupCount())

	group := groupFor(result, doc)
	require.NotNil(t, group)
	assert.Len(t, group.Paths, 2)
	assert.Contains(t, group.Paths, normalizePath(copy))
	assert.Nil(t, groupFor(result, other))
}

func TestScanUniqueContentYieldsNoGroups(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateTree(map[string]string{
		"one.txt":       "alpha",
		"two.txt":       "beta",
		"sub/three.txt": "gamma",
	})

	result, err := newTestDetector().Scan(context.Background(), f.RootDir)
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, result.Status)
	assert.Empty(t, result.Groups)
	assert.Equal(t, 3, result.FilesScanned)
}

func TestScanSameSizeDifferentContent(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateFile("a.txt", []byte("aaaa"))
	f.CreateFile("b.txt", []byte("bbbb"))

	result, err := newTestDetector().Scan(context.Background(), f.RootDir)
	require.NoError(t, err)

	// Same size bucket, but hashing separates them
	assert.Empty(t, result.Groups)
}

func TestScanHiddenFilesExcluded(t *testing.T) {
	f := testutil.NewFixture(t)
	tracked := f.CreateFile("src/main.c", []byte("int main() {}"))
	f.CreateFile(".git/objects/main.c", []byte("int main() {}"))
	f.CreateFile(".hidden.c", []byte("int main() {}"))

	result, err := newTestDetector().Scan(context.Background(), f.RootDir)
	require.NoError(t, err)

	// Only one non-hidden copy remains, so no group is emitted at all
	assert.Empty(t, result.Groups)
	assert.Nil(t, groupFor(result, tracked))
	assert.Equal(t, 1, result.FilesScanned)
}

func TestScanEmptyFilesGroupTogether(t *testing.T) {
	f := testutil.NewFixture(t)
	empty1 := f.CreateFile("a/empty1", nil)
	empty2 := f.CreateFile("b/empty2", nil)
	f.CreateFile("c/full", []byte("x"))

	result, err := newTestDetector().Scan(context.Background(), f.RootDir)
	require.NoError(t, err)

	require.Equal(t, 1, result.GroupCount())
	group := groupFor(result, empty1)
	require.NotNil(t, group)
	assert.Equal(t, int64(0), group.Size)
	assert.ElementsMatch(t, []string{normalizePath(empty1), normalizePath(empty2)}, group.Paths)
}

func TestScanEmptyVersusNonEmpty(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateFile("empty", nil)
	f.CreateFile("full", []byte("x"))

	result, err := newTestDetector().Scan(context.Background(), f.RootDir)
	require.NoError(t, err)

	assert.Empty(t, result.Groups)
}

func TestScanIdempotent(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateDuplicates("same bytes", "x/a.bin", "y/b.bin", "z/c.bin")
	f.CreateFile("unique.bin", []byte("unique"))

	det := newTestDetector()

	first, err := det.Scan(context.Background(), f.RootDir)
	require.NoError(t, err)
	second, err := det.Scan(context.Background(), f.RootDir)
	require.NoError(t, err)

	require.Equal(t, first.GroupCount(), second.GroupCount())
	for digest, group := range first.Groups {
		other, ok := second.Groups[digest]
		require.True(t, ok, "digest %s missing on rescan", digest)
		assert.Equal(t, group.Paths, other.Paths)
	}
}

func TestScanInvalidRoot(t *testing.T) {
	det := newTestDetector()

	_, err := det.Scan(context.Background(), "/no/such/directory")
	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)

	f := testutil.NewFixture(t)
	file := f.CreateFile("plain.txt", []byte("not a dir"))
	_, err = det.Scan(context.Background(), file)
	require.ErrorAs(t, err, &pathErr)
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func TestScanRejectsConcurrentScan(t *testing.T) {
	f := testutil.NewFixture(t)
	det := newTestDetector()

	det.running.Store(true)
	_, err := det.Scan(context.Background(), f.RootDir)
	assert.ErrorIs(t, err, ErrScanInProgress)
	det.running.Store(false)

	_, err = det.Scan(context.Background(), f.RootDir)
	assert.NoError(t, err)
}

func TestScanCancelledContextReturnsStopped(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateDuplicates("payload", "a/f1", "b/f2")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	det := newTestDetector()
	result, err := det.Scan(ctx, f.RootDir)
	require.NoError(t, err)

	assert.Equal(t, StatusStopped, result.Status)
	assert.True(t, result.Stopped())
	assert.Empty(t, result.Groups)
}

func TestStopBeforeScanLeavesNoResidualState(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateDuplicates("payload", "a/f1", "b/f2")

	det := newTestDetector()
	det.Stop()
	det.Stop() // idempotent

	// The flag is reset when the scan starts, so the scan completes
	result, err := det.Scan(context.Background(), f.RootDir)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, 1, result.GroupCount())
}

func TestStopDuringHashingDiscardsPartialWork(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateDuplicates("payload", "a/f1", "b/f2", "c/f3")

	det := newTestDetector()
	files := det.enumerate(context.Background(), f.RootDir)
	sizeGroups, _ := det.groupBySize(context.Background(), files)
	require.Len(t, sizeGroups, 1)

	det.Stop()
	groups, _ := det.hashGroups(context.Background(), sizeGroups)
	assert.Empty(t, groups)

	// Orchestrator converts this into the stopped outcome
	assert.True(t, det.stopped(context.Background()))
}

func TestScanProgressMonotonic(t *testing.T) {
	f := testutil.NewFixture(t)
	for i := 0; i < 5; i++ {
		f.CreateDuplicates("shared content", fmt.Sprintf("a/f%d", i), fmt.Sprintf("b/f%d", i))
		f.CreateFile(fmt.Sprintf("c/unique%d", i), []byte(fmt.Sprintf("unique content %d", i)))
	}

	det := newTestDetector()
	updates := det.GetProgressReporter().Subscribe()

	var events []progress.Update
	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range updates {
			events = append(events, u)
		}
	}()

	_, err := det.Scan(context.Background(), f.RootDir)
	require.NoError(t, err)

	det.GetProgressReporter().Unsubscribe(updates)
	<-done

	require.NotEmpty(t, events)
	last := 0.0
	for _, u := range events {
		assert.GreaterOrEqual(t, u.Percent, last, "percent went backwards at %q", u.Message)
		last = u.Percent
	}
	assert.Equal(t, progress.PhaseComplete, events[len(events)-1].Phase)
	assert.Equal(t, 100.0, events[len(events)-1].Percent)
}

func TestScanParallelMatchesSequential(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateDuplicates("first payload", "d1/a", "d2/b", "d3/c")
	f.CreateDuplicates("second payload!", "e1/a", "e2/b")
	f.CreateFile("unique", []byte("nothing like me"))

	seqCfg := config.GetDefault()
	seq, err := New(seqCfg).Scan(context.Background(), f.RootDir)
	require.NoError(t, err)

	parCfg := config.GetDefault()
	parCfg.Hash.Workers = 4
	par, err := New(parCfg).Scan(context.Background(), f.RootDir)
	require.NoError(t, err)

	require.Equal(t, seq.GroupCount(), par.GroupCount())
	for digest, group := range seq.Groups {
		other, ok := par.Groups[digest]
		require.True(t, ok)
		// Same membership in the same enumeration order
		assert.Equal(t, group.Paths, other.Paths)
	}
}

func TestCurrentOperation(t *testing.T) {
	det := newTestDetector()
	assert.Equal(t, "", det.CurrentOperation())

	det.setOperation("hashing /tmp/x")
	assert.Equal(t, "hashing /tmp/x", det.CurrentOperation())
}

func TestResultAccounting(t *testing.T) {
	result := &Result{
		Status: StatusCompleted,
		Groups: map[string]*Group{
			"d1": {Digest: "d1", Size: 100, Paths: []string{"/a", "/b", "/c"}},
			"d2": {Digest: "d2", Size: 10, Paths: []string{"/d", "/e"}},
		},
	}

	assert.Equal(t, 2, result.GroupCount())
	assert.Equal(t, 3, result.DuplicateCount())
	assert.Equal(t, int64(210), result.WastedBytes())

	sorted := result.SortedGroups()
	require.Len(t, sorted, 2)
	assert.Equal(t, "d1", sorted[0].Digest) // 200 wasted > 10 wasted
}
