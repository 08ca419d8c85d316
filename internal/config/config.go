// Package config provides configuration structures and validation for the
// reconciler. It covers the classification rule tables, the bank-label
// normalization threshold, workbook sheet names and operational parameters.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/glbank-reconciler/internal/domain/category"
)

// Config holds the complete application configuration. Rule tables and the
// similarity threshold are static per run: they are loaded once and passed
// explicitly into the classifier and normalizer, never read ambiently.
type Config struct {
	Application    ApplicationConfig
	Logging        LoggingConfig
	Reconciliation ReconciliationConfig
	Workbook       WorkbookConfig
	WorkerPool     WorkerPoolConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// JournalKeyword binds one journal-name substring to the category it
// resolves to. Order in the slice is the evaluation priority.
type JournalKeyword struct {
	Keyword  string
	Category category.Category
}

// ReconciliationConfig contains the rule tables driving classification and
// bank-label normalization.
type ReconciliationConfig struct {
	// SimilarityThreshold is the minimum ratio (0..1] at which a raw bank
	// transaction-type label is replaced by its closest canonical category.
	SimilarityThreshold float64

	// CheckPrefixes are the numeric transaction-number prefixes that mark a
	// GL line as a check when the number is at most CheckNumberMaxLen long.
	CheckPrefixes     []string
	CheckNumberMaxLen int

	// ACHPrefix marks transaction numbers of ACH transfers.
	ACHPrefix string

	// ZBAJournalMarker and InterestMarker drive the ZBA/Interest split:
	// journal contains the marker and description mentions interest means
	// Interest, journal alone means ZBA.
	ZBAJournalMarker string
	InterestMarker   string

	// JournalKeywords are matched against the lower-cased journal name in
	// order; the first hit wins.
	JournalKeywords []JournalKeyword

	// SquareMarker is searched in both journal name and description.
	SquareMarker string

	// TicketingMarkers are searched in the party name.
	TicketingMarkers []string

	// WireBatchMarkers and ARBatchMarkers are searched in the batch name.
	// Wires are evaluated before AR.
	WireBatchMarkers []string
	ARBatchMarkers   []string
}

// WorkbookConfig contains the sheet names and paths used by workbook
// ingestion and report export.
type WorkbookConfig struct {
	GLSheet          string // Sheet holding the GL extract
	BankSheet        string // Sheet holding the bank statement extract
	OutstandingSheet string // Sheet holding the prior outstanding checks

	PivotSheet          string // Output sheet for the three summary tables
	GLVsBankSheet       string // Output sheet for the matched table
	OutstandingOutSheet string // Output sheet for the consolidated ledger

	OutputFile string // Default report path for single-run invocations
}

// WorkerPoolConfig contains worker pool configuration for batch mode.
type WorkerPoolConfig struct {
	Size int // Maximum number of reconciliation runs in flight
}

// validate performs comprehensive validation of all configuration values,
// collecting every violation into a single error.
func (c *Config) validate() error {
	var validationErrors []string

	if c.Reconciliation.SimilarityThreshold <= 0 || c.Reconciliation.SimilarityThreshold > 1 {
		validationErrors = append(validationErrors, "RECON_SIMILARITY_THRESHOLD must be in (0, 1]")
	}
	if len(c.Reconciliation.CheckPrefixes) == 0 {
		validationErrors = append(validationErrors, "RECON_CHECK_PREFIXES is required")
	}
	if c.Reconciliation.CheckNumberMaxLen <= 0 {
		validationErrors = append(validationErrors, "RECON_CHECK_NUMBER_MAX_LEN must be greater than 0")
	}
	if c.Reconciliation.ACHPrefix == "" {
		validationErrors = append(validationErrors, "RECON_ACH_PREFIX is required")
	}
	if c.Reconciliation.ZBAJournalMarker == "" {
		validationErrors = append(validationErrors, "RECON_ZBA_JOURNAL_MARKER is required")
	}
	if c.Reconciliation.InterestMarker == "" {
		validationErrors = append(validationErrors, "RECON_INTEREST_MARKER is required")
	}
	if len(c.Reconciliation.JournalKeywords) == 0 {
		validationErrors = append(validationErrors, "RECON_JOURNAL_KEYWORDS is required")
	}
	for _, jk := range c.Reconciliation.JournalKeywords {
		if jk.Keyword == "" {
			validationErrors = append(validationErrors, "RECON_JOURNAL_KEYWORDS contains an empty keyword")
			continue
		}
		if !category.Known(jk.Category) {
			validationErrors = append(validationErrors,
				fmt.Sprintf("RECON_JOURNAL_KEYWORDS maps %q to unknown category %q", jk.Keyword, jk.Category))
		}
	}
	if c.Reconciliation.SquareMarker == "" {
		validationErrors = append(validationErrors, "RECON_SQUARE_MARKER is required")
	}
	if len(c.Reconciliation.TicketingMarkers) == 0 {
		validationErrors = append(validationErrors, "RECON_TICKETING_MARKERS is required")
	}
	if len(c.Reconciliation.WireBatchMarkers) == 0 {
		validationErrors = append(validationErrors, "RECON_WIRE_BATCH_MARKERS is required")
	}
	if len(c.Reconciliation.ARBatchMarkers) == 0 {
		validationErrors = append(validationErrors, "RECON_AR_BATCH_MARKERS is required")
	}

	if c.Workbook.GLSheet == "" {
		validationErrors = append(validationErrors, "WORKBOOK_GL_SHEET is required")
	}
	if c.Workbook.BankSheet == "" {
		validationErrors = append(validationErrors, "WORKBOOK_BANK_SHEET is required")
	}
	if c.Workbook.OutstandingSheet == "" {
		validationErrors = append(validationErrors, "WORKBOOK_OUTSTANDING_SHEET is required")
	}
	if c.Workbook.PivotSheet == "" {
		validationErrors = append(validationErrors, "WORKBOOK_PIVOT_SHEET is required")
	}
	if c.Workbook.GLVsBankSheet == "" {
		validationErrors = append(validationErrors, "WORKBOOK_GL_VS_BANK_SHEET is required")
	}
	if c.Workbook.OutstandingOutSheet == "" {
		validationErrors = append(validationErrors, "WORKBOOK_OUTSTANDING_OUT_SHEET is required")
	}

	if c.WorkerPool.Size <= 0 {
		validationErrors = append(validationErrors, "WORKER_POOL_SIZE must be greater than 0")
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}
