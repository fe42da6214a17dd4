// loom-bench is a benchmark and stress test for the loom library. It
// generates a large file and measures the cost of common operations:
// sequential reads through the block cache, edits, inserts, deletes, and a
// whole-file save.
package main

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/kestrelfile/loom"
)

var (
	fileSizeMB  int64
	insertCount int
	editCount   int
	deleteCount int
	verbose     bool
)

type benchResult struct {
	Name     string
	Duration time.Duration
	Ops      int
}

func (r benchResult) String() string {
	if r.Ops > 0 {
		return fmt.Sprintf("%-32s %12v (%d ops, %.0f ops/sec)",
			r.Name, r.Duration.Round(time.Millisecond), r.Ops, float64(r.Ops)/r.Duration.Seconds())
	}
	return fmt.Sprintf("%-32s %12v", r.Name, r.Duration.Round(time.Millisecond))
}

func main() {
	root := &cobra.Command{
		Use:   "loom-bench",
		Short: "Benchmark and stress test the loom binary-editing library",
		RunE:  run,
	}
	root.Flags().Int64Var(&fileSizeMB, "size-mb", 64, "size of the generated test file, in megabytes")
	root.Flags().IntVar(&insertCount, "inserts", 500, "number of insert operations to benchmark")
	root.Flags().IntVar(&editCount, "edits", 2000, "number of edit operations to benchmark")
	root.Flags().IntVar(&deleteCount, "deletes", 500, "number of delete operations to benchmark")
	root.Flags().BoolVar(&verbose, "verbose", false, "emit structured log output during the run")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	fmt.Println("loom benchmark")
	fmt.Println("==============")
	fmt.Printf("Go version: %s, GOMAXPROCS: %d\n", runtime.Version(), runtime.GOMAXPROCS(0))
	fmt.Printf("Target file size: %d MB\n\n", fileSizeMB)

	tmpDir, err := os.MkdirTemp("", "loom-bench-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	testFile := filepath.Join(tmpDir, "bench.bin")

	var results []benchResult

	results = append(results, generateTestFile(testFile, fileSizeMB*1024*1024))
	fmt.Println(results[len(results)-1])

	view, err := loom.Open(testFile, loom.Flags{Mode: loom.WholeMode})
	if err != nil {
		return fmt.Errorf("open view: %w", err)
	}
	view.SetLogger(logger)
	defer view.Close()

	size, err := view.Size()
	if err != nil {
		return fmt.Errorf("size: %w", err)
	}

	results = append(results, benchSequentialRead(view, size))
	results = append(results, benchEdits(view, size))
	results = append(results, benchInserts(view))
	results = append(results, benchDeletes(view))
	results = append(results, benchUndoRedo(view))
	results = append(results, benchSave(view))

	fmt.Println("\nSUMMARY")
	fmt.Println("=======")
	for _, r := range results {
		fmt.Println(r)
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Printf("\nPeak heap allocation: %d MB\n", m.HeapSys/(1024*1024))
	return nil
}

func generateTestFile(path string, size int64) benchResult {
	start := time.Now()

	f, err := os.Create(path)
	if err != nil {
		return benchResult{Name: "generate test file", Duration: 0}
	}
	defer f.Close()

	const chunk = 1 << 20
	buf := make([]byte, chunk)
	for i := range buf {
		buf[i] = byte(i % 256)
	}

	var written int64
	for written < size {
		want := int64(len(buf))
		if remaining := size - written; remaining < want {
			want = remaining
		}
		n, err := f.Write(buf[:want])
		if err != nil {
			break
		}
		written += int64(n)
	}

	return benchResult{Name: "generate test file", Duration: time.Since(start)}
}

func benchSequentialRead(v *loom.View, size int64) benchResult {
	start := time.Now()
	ops := 0
	const chunk = 64 * 1024
	for pos := int64(0); pos < size; pos += chunk {
		if _, err := v.ReadBytes(pos, chunk); err != nil {
			break
		}
		ops++
	}
	return benchResult{Name: "sequential read (64KB)", Duration: time.Since(start), Ops: ops}
}

func benchEdits(v *loom.View, size int64) benchResult {
	start := time.Now()
	ops := 0
	for i := 0; i < editCount; i++ {
		pos := int64(i) % size
		if err := v.Edit(pos, byte(i)); err == nil {
			ops++
		}
	}
	return benchResult{Name: "edit (single byte)", Duration: time.Since(start), Ops: ops}
}

func benchInserts(v *loom.View) benchResult {
	payload := make([]byte, 256)
	rand.Read(payload)

	start := time.Now()
	ops := 0
	for i := 0; i < insertCount; i++ {
		if err := v.InsertPattern(int64(i)*512, int64(len(payload)), payload); err == nil {
			ops++
		}
	}
	return benchResult{Name: "insert (256B pattern)", Duration: time.Since(start), Ops: ops}
}

func benchDeletes(v *loom.View) benchResult {
	start := time.Now()
	ops := 0
	for i := 0; i < deleteCount; i++ {
		if err := v.Delete(0, 8); err == nil {
			ops++
		}
	}
	return benchResult{Name: "delete (8B)", Duration: time.Since(start), Ops: ops}
}

func benchUndoRedo(v *loom.View) benchResult {
	start := time.Now()
	ops := 0
	for v.CanUndo() {
		if v.Undo() != loom.UndoSuccess {
			break
		}
		ops++
	}
	for i := 0; i < ops; i++ {
		if v.Redo() != loom.RedoSuccess {
			break
		}
	}
	return benchResult{Name: "undo/redo cycle", Duration: time.Since(start), Ops: ops * 2}
}

func benchSave(v *loom.View) benchResult {
	start := time.Now()
	status, err := v.Save()
	if err != nil || status != loom.SaveSuccess {
		return benchResult{Name: fmt.Sprintf("save (status=%v)", status), Duration: time.Since(start)}
	}
	return benchResult{Name: "save", Duration: time.Since(start)}
}
