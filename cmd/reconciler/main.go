package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/glbank-reconciler/internal/config"
	"github.com/glbank-reconciler/internal/logger"
	"github.com/glbank-reconciler/internal/platform/workbook"
	"github.com/glbank-reconciler/internal/reconciliation/components"
	"github.com/glbank-reconciler/internal/reconciliation/service"
)

// job is one reconciliation to run: the GL workbook (which also carries the
// prior outstanding-checks sheet), the bank statement workbook and the
// report destination.
type job struct {
	glPath   string
	bankPath string
	outPath  string
}

// jobList collects repeated -run flags of the form gl.xlsx:bank.xlsx:report.xlsx.
type jobList []job

func (j *jobList) String() string {
	parts := make([]string, len(*j))
	for i, item := range *j {
		parts[i] = fmt.Sprintf("%s:%s:%s", item.glPath, item.bankPath, item.outPath)
	}
	return strings.Join(parts, ",")
}

func (j *jobList) Set(value string) error {
	parts := strings.Split(value, ":")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return fmt.Errorf("run %q is not of the form gl.xlsx:bank.xlsx:report.xlsx", value)
	}
	*j = append(*j, job{glPath: parts[0], bankPath: parts[1], outPath: parts[2]})
	return nil
}

func main() {
	var (
		runs     jobList
		glPath   = flag.String("gl", "", "GL workbook (must contain the GL and outstanding-check sheets)")
		bankPath = flag.String("bank", "", "bank statement workbook")
		outPath  = flag.String("out", "", "report output path (defaults to the configured output file)")
	)
	flag.Var(&runs, "run", "reconciliation triple gl.xlsx:bank.xlsx:report.xlsx (repeatable for batch mode)")
	flag.Parse()

	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("reconciler")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	log.Info("Starting GL vs Bank reconciler",
		"app_name", cfg.Application.Name,
		"env", cfg.Application.Env,
	)

	if len(runs) == 0 {
		if *glPath == "" || *bankPath == "" {
			log.Error("No inputs: pass -gl and -bank, or one or more -run triples")
			os.Exit(1)
		}
		out := *outPath
		if out == "" {
			out = cfg.Workbook.OutputFile
		}
		runs = jobList{{glPath: *glPath, bankPath: *bankPath, outPath: out}}
	}

	// Build the pipeline components
	normalizer := components.NewKeyNormalizer(cfg.Reconciliation, log)
	classifier := components.NewTransactionClassifier(cfg.Reconciliation, log)
	aggregator := components.NewGLAggregator(log)
	matcher := components.NewRecordMatcher(log)
	resolver := components.NewOutstandingResolver(log)
	summarizer := components.NewCategorySummarizer(log)

	engine := service.NewEngine(normalizer, classifier, aggregator, matcher, resolver, summarizer, log)

	pooled, err := service.NewWorkerPoolReconciliationService(
		engine,
		service.WorkerPoolConfig{Size: cfg.WorkerPool.Size},
		log,
	)
	if err != nil {
		log.Error("Failed to initialize worker pool", "error", err)
		os.Exit(1)
	}
	defer pooled.Shutdown()

	reader := workbook.NewReader(cfg.Workbook, log)
	writer := workbook.NewWriter(cfg.Workbook, log)

	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0

	for _, r := range runs {
		r := r
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := reconcileOne(appCtx, pooled, reader, writer, r); err != nil {
				log.Error("Reconciliation run failed",
					"gl", r.glPath,
					"bank", r.bankPath,
					"error", err,
				)
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if failed > 0 {
		log.Error("Batch finished with failures", "failed", failed, "total", len(runs))
		os.Exit(1)
	}
	log.Info("Batch finished", "runs", len(runs))
}

func reconcileOne(
	ctx context.Context,
	svc service.ReconciliationService,
	reader *workbook.Reader,
	writer *workbook.Writer,
	j job,
) error {
	input, err := reader.ReadRunInput(j.glPath, j.bankPath)
	if err != nil {
		return err
	}

	result, err := svc.Reconcile(ctx, input)
	if err != nil {
		return err
	}

	return writer.WriteReport(result, j.outPath)
}
