// Package report renders evaluated earnings records to a directory of
// static files: JSON dumps, CSV watchlists, and HTML overview pages.
package report

import (
	"embed"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/overnightlabs/overnight-go/pkg/earnings"
)

//go:embed templates/*.html
var templateFS embed.FS

// Assembler consumes finished evaluations and drives output rendering.
type Assembler struct {
	symbols []string
	cfg     earnings.Config
	evals   []earnings.EarningsEvaluation
	tmpl    *template.Template
}

func NewAssembler(symbols []string, cfg earnings.Config, evals []earnings.EarningsEvaluation) (*Assembler, error) {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"cleanName": earnings.CleanName,
		"searchURL": earnings.SearchURL,
		"date":      func(t time.Time) string { return t.Format("2006-01-02") },
		"fixed2":    func(d decimal.Decimal) string { return d.StringFixed(2) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Assembler{symbols: symbols, cfg: cfg, evals: evals, tmpl: tmpl}, nil
}

// Tradeable filters the evaluations down to candidates without diagnostics.
func (a *Assembler) Tradeable() []earnings.EarningsEvaluation {
	var out []earnings.EarningsEvaluation
	for _, e := range a.evals {
		if earnings.IsTradeable(e) {
			out = append(out, e)
		}
	}
	return out
}

// EvaluationTime is the latest per-record evaluation time, at second
// granularity.
func (a *Assembler) EvaluationTime() time.Time {
	var max time.Time
	for _, e := range a.evals {
		if e.EvaluationTime.After(max) {
			max = e.EvaluationTime
		}
	}
	return max.Truncate(time.Second)
}

// WriteFiles renders every output artifact into dir, creating it if needed.
func (a *Assembler) WriteFiles(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := a.writeJSON(filepath.Join(dir, "config.json"), a.cfg); err != nil {
		return err
	}
	if err := a.writeJSON(filepath.Join(dir, "earnings.json"), a.evals); err != nil {
		return err
	}
	if err := a.writeSymbolsCSV(filepath.Join(dir, "symbols-all.csv"), a.symbols, false); err != nil {
		return err
	}

	if err := a.writeOverview(filepath.Join(dir, "earnings-all.html"), a.evals); err != nil {
		return err
	}

	tradeable := a.Tradeable()
	if err := a.writeOverview(filepath.Join(dir, "earnings.html"), tradeable); err != nil {
		return err
	}
	watchlist := make([]string, 0, len(tradeable))
	for _, e := range tradeable {
		watchlist = append(watchlist, e.Underlying)
	}
	if err := a.writeSymbolsCSV(filepath.Join(dir, "symbols.csv"), watchlist, true); err != nil {
		return err
	}

	return a.writeIndex(filepath.Join(dir, "index.html"))
}

func (a *Assembler) writeJSON(path string, v any) error {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(body, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (a *Assembler) writeSymbolsCSV(path string, symbols []string, header bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if header {
		if err := w.Write([]string{"Symbol"}); err != nil {
			return fmt.Errorf("write %s: %w", filepath.Base(path), err)
		}
	}
	for _, symbol := range symbols {
		if err := w.Write([]string{symbol}); err != nil {
			return fmt.Errorf("write %s: %w", filepath.Base(path), err)
		}
	}
	w.Flush()
	return w.Error()
}

type overviewData struct {
	Earnings       []earnings.EarningsEvaluation
	EvaluationTime time.Time
	Date           time.Time
}

func (a *Assembler) writeOverview(path string, evals []earnings.EarningsEvaluation) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	data := overviewData{
		Earnings:       evals,
		EvaluationTime: a.EvaluationTime(),
		Date:           time.Now(),
	}
	if err := a.tmpl.ExecuteTemplate(f, "overview.html", data); err != nil {
		return fmt.Errorf("render %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (a *Assembler) writeIndex(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create index.html: %w", err)
	}
	defer f.Close()

	if err := a.tmpl.ExecuteTemplate(f, "index.html", struct{ Date time.Time }{Date: time.Now()}); err != nil {
		return fmt.Errorf("render index.html: %w", err)
	}
	return nil
}
