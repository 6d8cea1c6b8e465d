package sortengine

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"github.com/yrbane/photosort/internal/dupe"
)

// Summary reports the outcome of a sort run, for both human-readable
// printing and test assertions.
type Summary struct {
	Copied       int
	Skipped      int // resume-skip: already recorded at the same size
	Duplicates   int // content-hash already present in the archive
	ByDateSource map[DateSource]int
	YearsCreated map[string]bool
}

// RunSort imports every photograph under source into output, partitioned
// by capture year, resuming from any existing progress journal and
// skipping content the archive already holds. A SIGINT during the walk
// persists the journal and returns cleanly rather than leaving a
// half-written archive.
func RunSort(source, output string) (Summary, error) {
	summary := Summary{
		ByDateSource: make(map[DateSource]int),
		YearsCreated: make(map[string]bool),
	}

	source, err := canonicalize(source)
	if err != nil {
		return summary, fmt.Errorf("resolve source %s: %w", source, err)
	}

	if err := os.MkdirAll(output, 0o755); err != nil {
		return summary, fmt.Errorf("create output dir %s: %w", output, err)
	}

	progressPath := filepath.Join(output, ProgressFileName)
	progress, err := LoadProgress(progressPath)
	if err != nil {
		return summary, err
	}
	processedIndex, knownHashes := BuildIndexes(progress)

	walkResult, err := WalkSource(source)
	if err != nil {
		return summary, fmt.Errorf("walk source %s: %w", source, err)
	}

	log.Printf("[sort] %d directories, %d photos (%s) to examine, %d already recorded",
		walkResult.DirCount, len(walkResult.Photos), humanize.Bytes(uint64(walkResult.TotalSize)), len(processedIndex))

	var interrupted atomic.Bool
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		interrupted.Store(true)
	}()
	defer signal.Stop(sigCh)

	bar := progressbar.Default(int64(len(walkResult.Photos)), "sorting")
	var copiedDests []string

	for _, src := range walkResult.Photos {
		if interrupted.Load() {
			log.Printf("[sort] interrupted, progress saved")
			break
		}
		_ = bar.Add(1)

		info, err := os.Stat(src)
		if err != nil {
			log.Printf("[sort] stat %s: %v", src, err)
			continue
		}
		size := uint64(info.Size())

		if knownSize, ok := processedIndex[src]; ok && knownSize == size {
			bar.Describe("skip")
			summary.Skipped++
			continue
		}

		hash, err := HashFile(src)
		if err != nil {
			log.Printf("[sort] hash %s: %v", src, err)
			continue
		}
		if knownHashes[hash] {
			bar.Describe("dupe")
			summary.Duplicates++
			continue
		}

		capturedAt, dateSource := DetectDate(src)
		bar.Describe(string(dateSource))
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(src)), ".")
		dest := BuildDestPath(output, capturedAt, ext)

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			log.Printf("[sort] mkdir for %s: %v", dest, err)
			continue
		}
		if err := copyFile(src, dest); err != nil {
			return summary, fmt.Errorf("copy %s -> %s: %w", src, dest, err)
		}
		if err := appendOrigin(dest, src); err != nil {
			log.Printf("[sort] record origin for %s: %v", dest, err)
		}

		entry := ProcessedEntry{
			Source:     src,
			Dest:       dest,
			Size:       size,
			Hash:       hash,
			DateSource: string(dateSource),
		}
		progress.Processed = append(progress.Processed, entry)
		processedIndex[src] = size
		knownHashes[hash] = true
		summary.Copied++
		summary.ByDateSource[dateSource]++
		summary.YearsCreated[capturedAt.Format("2006")] = true
		copiedDests = append(copiedDests, dest)

		if err := SaveProgress(progressPath, progress); err != nil {
			return summary, err
		}
	}

	log.Printf("[sort] copied=%d skipped=%d duplicates=%d years=%d",
		summary.Copied, summary.Skipped, summary.Duplicates, len(summary.YearsCreated))
	log.Printf("[sort] by date source: exif=%d dirname=%d filesystem=%d",
		summary.ByDateSource[DateSourceExif], summary.ByDateSource[DateSourceDirname], summary.ByDateSource[DateSourceFilesystem])

	reportNearDuplicates(copiedDests)
	return summary, nil
}

// reportNearDuplicates prints an advisory list of perceptually similar
// photos copied during this run. It never affects dedup decisions.
func reportNearDuplicates(dests []string) {
	for year, paths := range dupe.GroupByYear(dests) {
		for _, pair := range dupe.ScanYear(paths) {
			log.Printf("[sort] possible near-duplicate in %s: %s ~ %s (distance %d)",
				year, pair.A, pair.B, pair.Distance)
		}
	}
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
