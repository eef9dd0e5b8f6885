package detector

import (
	"context"
	"encoding/hex"
	"hash"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"

	sha256 "github.com/minio/sha256-simd"
	"github.com/zeebo/blake3"
	"golang.org/x/sync/errgroup"

	"github.com/fenilsonani/dupefinder/internal/progress"
)

// hashChunkSize is the streaming window for content digests. Files are
// never loaded whole into memory.
const hashChunkSize = 4096

// newDigest returns the configured content digest. Both algorithms are
// 256-bit cryptographic hashes; digest equality is treated as content
// equality, an accepted residual collision risk.
func newDigest(algorithm string) hash.Hash {
	switch algorithm {
	case "sha256":
		return sha256.New()
	default:
		return blake3.New()
	}
}

// hashFile streams a file through the digest in fixed-size chunks and
// returns the hex-encoded sum.
func hashFile(path, algorithm string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := newDigest(algorithm)
	buf := make([]byte, hashChunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// hashGroups digests every file in every surviving size bucket and
// groups by digest. Files that fail to open or error mid-read are
// excluded from their group and counted. Only digest groups with two or
// more members survive; a singleton after hashing just means same size,
// different content.
func (d *Detector) hashGroups(ctx context.Context, sizeGroups SizeGroups) (map[string]*Group, int) {
	total := 0
	for _, members := range sizeGroups {
		total += len(members)
	}

	// Iterate buckets in ascending size order so repeated scans of the
	// same tree publish the same progress sequence.
	sizes := make([]int64, 0, len(sizeGroups))
	for size := range sizeGroups {
		sizes = append(sizes, size)
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })

	groups := make(map[string]*Group)
	var processed, skipped atomic.Int64

	workers := d.config.Hash.Workers
	for _, size := range sizes {
		if d.stopped(ctx) {
			break
		}

		members := sizeGroups[size]
		var digests []string
		if workers > 1 {
			digests = d.hashBucketParallel(ctx, members, workers, total, &processed, &skipped)
		} else {
			digests = d.hashBucket(ctx, members, total, &processed, &skipped)
		}

		// Membership order within a digest group follows the order the
		// files appeared in their size bucket, which is enumeration order.
		for i, path := range members {
			if i >= len(digests) || digests[i] == "" {
				continue
			}
			digest := digests[i]
			group, ok := groups[digest]
			if !ok {
				group = &Group{Digest: digest, Size: size}
				groups[digest] = group
			}
			group.Paths = append(group.Paths, path)
		}
	}

	for digest, group := range groups {
		if len(group.Paths) < 2 {
			delete(groups, digest)
		}
	}

	return groups, int(skipped.Load())
}

// hashBucket digests a bucket's members sequentially. The returned
// slice is indexed like members; empty string marks an excluded file.
func (d *Detector) hashBucket(ctx context.Context, members []string, total int, processed, skipped *atomic.Int64) []string {
	digests := make([]string, len(members))

	for i, path := range members {
		if d.stopped(ctx) {
			return digests
		}

		d.setOperation("hashing " + path)
		n := processed.Add(1)
		percent := hashBase + float64(n)/float64(max(total, 1))*hashSpan
		d.report(progress.PhaseHashing, percent, "Calculating hash: "+filepath.Base(path), path)

		digest, err := hashFile(path, d.config.Hash.Algorithm)
		if err != nil {
			skipped.Add(1)
			continue
		}
		digests[i] = digest
	}

	return digests
}

// hashBucketParallel digests a bucket's members through a bounded
// worker pool. Results land in per-index slots so group membership
// order is unaffected by completion order, and the shared processed
// counter keeps the published percent monotonic.
func (d *Detector) hashBucketParallel(ctx context.Context, members []string, workers, total int, processed, skipped *atomic.Int64) []string {
	digests := make([]string, len(members))

	var eg errgroup.Group
	eg.SetLimit(workers)

	for i, path := range members {
		i, path := i, path
		eg.Go(func() error {
			if d.stopped(ctx) {
				return nil
			}

			d.setOperation("hashing " + path)
			n := processed.Add(1)
			percent := hashBase + float64(n)/float64(max(total, 1))*hashSpan
			d.report(progress.PhaseHashing, percent, "Calculating hash: "+filepath.Base(path), path)

			digest, err := hashFile(path, d.config.Hash.Algorithm)
			if err != nil {
				skipped.Add(1)
				return nil
			}
			digests[i] = digest
			return nil
		})
	}

	eg.Wait()
	return digests
}
