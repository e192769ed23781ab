package report

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/keyday/llmbench/pkg/api"
	"github.com/keyday/llmbench/pkg/observability"
)

// Gate renders, sizes, and persists the documents for one report, deciding
// durable-accept vs. reject.
type Gate struct {
	dir       string
	failedDir string
	sheetDir  string
	minSize   int64
}

// Outcome is the gate's decision for one report. Rejections are recoverable:
// the caller requeues the question with the reason.
type Outcome struct {
	Accepted bool
	Reason   string

	// HTMLPath and SheetPath are set on acceptance.
	HTMLPath  string
	SheetPath string

	// RelocatedPath is where the narrative document landed after rejection;
	// empty when the narrative was never written.
	RelocatedPath string

	// Size is the narrative document size in bytes.
	Size int64
}

// NewGate creates a Gate and ensures the output directories exist.
func NewGate(dir, failedDir, sheetDir string, minSize int64) (*Gate, error) {
	for _, d := range []string{dir, failedDir, sheetDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("creating report directory %s: %w", d, err)
		}
	}
	return &Gate{
		dir:       dir,
		failedDir: failedDir,
		sheetDir:  sheetDir,
		minSize:   minSize,
	}, nil
}

// Write renders both documents and applies the acceptance rules: the
// narrative must reach the size floor and the spreadsheet must render.
// On rejection any written narrative is relocated to the failed area, never
// deleted, and no spreadsheet is left behind.
func (g *Gate) Write(rep *api.Report) Outcome {
	name := DocumentName(rep.Question, rep.CreatedAt)
	htmlPath := filepath.Join(g.dir, name+".html")

	body, err := RenderNarrative(rep)
	if err != nil {
		observability.ReportsTotal.WithLabelValues("write_failed").Inc()
		return Outcome{Reason: fmt.Sprintf("narrative rendering failed: %s", err)}
	}
	if err := os.WriteFile(htmlPath, body, 0o644); err != nil {
		observability.ReportsTotal.WithLabelValues("write_failed").Inc()
		return Outcome{Reason: fmt.Sprintf("narrative write failed: %s", err)}
	}

	size := int64(len(body))
	if size < g.minSize {
		reason := fmt.Sprintf("too small (%.1f KiB)", float64(size)/1024)
		relocated := g.relocate(htmlPath, reason)
		observability.ReportsTotal.WithLabelValues("too_small").Inc()
		return Outcome{Reason: reason, RelocatedPath: relocated, Size: size}
	}

	sheetPath := filepath.Join(g.sheetDir, name+".xlsx")
	if err := RenderSheet(rep, sheetPath); err != nil {
		slog.Error("spreadsheet rendering failed", "path", sheetPath, "error", err)
		reason := "secondary rendering failed"
		relocated := g.relocate(htmlPath, reason)
		observability.ReportsTotal.WithLabelValues("sheet_failed").Inc()
		return Outcome{Reason: reason, RelocatedPath: relocated, Size: size}
	}

	observability.ReportsTotal.WithLabelValues("accepted").Inc()
	return Outcome{
		Accepted:  true,
		HTMLPath:  htmlPath,
		SheetPath: sheetPath,
		Size:      size,
	}
}

// relocate moves a rejected narrative into the failed area and returns its
// new path. On move failure the original path is returned so the document
// is still never lost.
func (g *Gate) relocate(path, reason string) string {
	dest := filepath.Join(g.failedDir, filepath.Base(path))
	if err := moveFile(path, dest); err != nil {
		slog.Error("relocating rejected report failed", "path", path, "error", err)
		return path
	}
	slog.Warn("report rejected", "path", dest, "reason", reason)
	return dest
}

// moveFile renames src to dest, falling back to copy-and-remove when the
// destination is on another filesystem.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
