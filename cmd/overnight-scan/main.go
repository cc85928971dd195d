package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	overnight "github.com/overnightlabs/overnight-go"
	"github.com/overnightlabs/overnight-go/pkg/earnings"
	"github.com/overnightlabs/overnight-go/pkg/logger"
	"github.com/overnightlabs/overnight-go/pkg/report"
	"github.com/overnightlabs/overnight-go/pkg/tdapi"
)

type appConfig struct {
	TDAPIKey string `envconfig:"TD_API_KEY" required:"true"`
	RedisURL string `envconfig:"REDIS_URL"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Env      string `envconfig:"APP_ENV" default:"development"`
}

func main() {
	var (
		symbolsFile = flag.String("symbols", "symbols.csv", "CSV file with one underlying symbol per row")
		outputDir   = flag.String("output", "out", "Directory for rendered report files")
		parallel    = flag.Int("parallel", 4, "Concurrent underlyings to evaluate")
		maxDTE      = flag.Int("max-dte", 0, "Override the maximum days-to-expiration cutoff")
	)
	flag.Parse()

	_ = godotenv.Load()
	var app appConfig
	if err := envconfig.Process("", &app); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(app.LogLevel, app.Env); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.Get()

	symbols, err := readSymbols(*symbolsFile)
	if err != nil {
		log.Fatalw("read symbols", "file", *symbolsFile, "err", err)
	}
	if len(symbols) == 0 {
		log.Fatalw("no symbols to evaluate", "file", *symbolsFile)
	}

	cfg := earnings.DefaultConfig().MergeEnv()
	if *maxDTE > 0 {
		cfg.MaxDTE = *maxDTE
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid evaluation config", "err", err)
	}

	client := overnight.NewClient(
		overnight.WithAPIKey(app.TDAPIKey),
		overnight.WithRedisURL(app.RedisURL),
	)

	log.Infow("starting scan", "symbols", len(symbols), "max_dte", cfg.MaxDTE)
	evals := scanAll(context.Background(), client, symbols, cfg, *parallel)
	log.Infow("scan finished", "evaluated", len(evals), "failed", len(symbols)-len(evals))

	assembler, err := report.NewAssembler(symbols, cfg, evals)
	if err != nil {
		log.Fatalw("build assembler", "err", err)
	}
	if err := assembler.WriteFiles(*outputDir); err != nil {
		log.Fatalw("write report files", "dir", *outputDir, "err", err)
	}

	tradeable := assembler.Tradeable()
	fmt.Printf("Evaluated %d underlyings, %d tradeable. Report written to %s\n",
		len(evals), len(tradeable), *outputDir)
	for _, e := range tradeable {
		fmt.Printf("  %s | %s | price=%s volume=%d expirations=%d\n",
			e.Underlying,
			earnings.CleanName(e.Name),
			e.Price.StringFixed(2),
			e.Volume,
			len(e.Expirations),
		)
	}
}

// scanAll evaluates symbols with a bounded worker pool. A failed symbol is
// logged and skipped; it never aborts the batch.
func scanAll(ctx context.Context, client *overnight.Client, symbols []string,
	cfg earnings.Config, parallel int) []earnings.EarningsEvaluation {

	if parallel < 1 {
		parallel = 1
	}
	log := logger.Get()

	var (
		mu    sync.Mutex
		evals []earnings.EarningsEvaluation
		wg    sync.WaitGroup
	)
	work := make(chan string)

	for i := 0; i < parallel; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range work {
				raw, err := client.Chains.OptionChain(ctx, &tdapi.ChainRequest{Symbol: symbol})
				if err != nil {
					log.Warnw("fetch chain failed", "symbol", symbol, "err", err)
					continue
				}
				eval, err := earnings.Evaluate(raw, cfg)
				if err != nil {
					log.Warnw("evaluate failed", "symbol", symbol, "err", err)
					continue
				}
				mu.Lock()
				evals = append(evals, eval)
				mu.Unlock()
			}
		}()
	}
	for _, symbol := range symbols {
		work <- symbol
	}
	close(work)
	wg.Wait()

	sort.Slice(evals, func(i, j int) bool { return evals[i].Underlying < evals[j].Underlying })
	return evals
}

// readSymbols reads one symbol per CSV row, skipping blanks and an optional
// "Symbol" header.
func readSymbols(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var symbols []string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		symbol := strings.ToUpper(strings.TrimSpace(row[0]))
		if symbol == "" || symbol == "SYMBOL" {
			continue
		}
		symbols = append(symbols, symbol)
	}
	return symbols, nil
}
