package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/glbank-reconciler/internal/domain/category"
)

// LoadConfigWithName loads configuration using the specified name, auto-detecting the file type
// This is useful when the configuration file extension is unknown or variable
func LoadConfigWithName(configName string) (*Config, error) {
	return loadConfig(configName, "")
}

// LoadConfigWithNameAndType loads configuration with explicit name and type specification
// Use this when you need to force a specific configuration format (e.g., "yaml", "json")
func LoadConfigWithNameAndType(configName, configType string) (*Config, error) {
	return loadConfig(configName, configType)
}

// LoadConfig loads configuration from a .env file using the provided base name
// This is the preferred method for loading environment-specific configurations
func LoadConfig(configName string) (*Config, error) {
	configFileName := fmt.Sprintf("%s.env", configName)
	return loadConfig(configFileName, "env")
}

// loadConfig handles configuration loading from files and environment variables.
// It implements a layered approach to configuration:
// 1. Load defaults
// 2. Override with config file values (if found)
// 3. Override with environment variables
// 4. Validate the final configuration
func loadConfig(configName, configType string) (*Config, error) {
	// Initialize viper with default values
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(configName)
	if configType != "" {
		v.SetConfigType(configType)
	}

	// Add config paths in order of priority
	v.AddConfigPath("./configs") // First check in configs directory
	v.AddConfigPath(".")         // Then check in root directory

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Printf("INFO: No config file '%s' found, relying on environment variables and defaults.\n", configName)
		} else {
			fmt.Printf("WARNING: Error reading config file (%s): %v\n", v.ConfigFileUsed(), err)
		}
	} else {
		fmt.Printf("INFO: Config loaded from file: %s\n", v.ConfigFileUsed())
	}

	v.AutomaticEnv() // Automatically read matching environment variables

	journalKeywords, err := parseJournalKeywords(v.GetStringSlice("RECON_JOURNAL_KEYWORDS"))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Build the config struct
	config := &Config{
		Application: ApplicationConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Reconciliation: ReconciliationConfig{
			SimilarityThreshold: v.GetFloat64("RECON_SIMILARITY_THRESHOLD"),
			CheckPrefixes:       v.GetStringSlice("RECON_CHECK_PREFIXES"),
			CheckNumberMaxLen:   v.GetInt("RECON_CHECK_NUMBER_MAX_LEN"),
			ACHPrefix:           v.GetString("RECON_ACH_PREFIX"),
			ZBAJournalMarker:    v.GetString("RECON_ZBA_JOURNAL_MARKER"),
			InterestMarker:      v.GetString("RECON_INTEREST_MARKER"),
			JournalKeywords:     journalKeywords,
			SquareMarker:        v.GetString("RECON_SQUARE_MARKER"),
			TicketingMarkers:    v.GetStringSlice("RECON_TICKETING_MARKERS"),
			WireBatchMarkers:    v.GetStringSlice("RECON_WIRE_BATCH_MARKERS"),
			ARBatchMarkers:      v.GetStringSlice("RECON_AR_BATCH_MARKERS"),
		},
		Workbook: WorkbookConfig{
			GLSheet:             v.GetString("WORKBOOK_GL_SHEET"),
			BankSheet:           v.GetString("WORKBOOK_BANK_SHEET"),
			OutstandingSheet:    v.GetString("WORKBOOK_OUTSTANDING_SHEET"),
			PivotSheet:          v.GetString("WORKBOOK_PIVOT_SHEET"),
			GLVsBankSheet:       v.GetString("WORKBOOK_GL_VS_BANK_SHEET"),
			OutstandingOutSheet: v.GetString("WORKBOOK_OUTSTANDING_OUT_SHEET"),
			OutputFile:          v.GetString("WORKBOOK_OUTPUT_FILE"),
		},
		WorkerPool: WorkerPoolConfig{
			Size: v.GetInt("WORKER_POOL_SIZE"),
		},
	}

	// Validate the configuration
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// parseJournalKeywords parses "keyword:Category" pairs into the ordered
// keyword table. The pair order in the list is the evaluation priority.
func parseJournalKeywords(pairs []string) ([]JournalKeyword, error) {
	keywords := make([]JournalKeyword, 0, len(pairs))
	for _, pair := range pairs {
		keyword, cat, found := strings.Cut(pair, ":")
		if !found || keyword == "" || cat == "" {
			return nil, fmt.Errorf("RECON_JOURNAL_KEYWORDS entry %q is not of the form keyword:Category", pair)
		}
		keywords = append(keywords, JournalKeyword{
			Keyword:  keyword,
			Category: category.Category(cat),
		})
	}
	return keywords, nil
}

// setDefaults initializes configuration with the standard rule tables and
// operational defaults. The rule values mirror the finance team's SOP for
// categorizing GL activity.
func setDefaults(v *viper.Viper) {
	// Bank-label normalization
	v.SetDefault("RECON_SIMILARITY_THRESHOLD", 0.80)

	// Transaction-number pattern rules
	v.SetDefault("RECON_CHECK_PREFIXES", []string{"1112", "340"})
	v.SetDefault("RECON_CHECK_NUMBER_MAX_LEN", 9)
	v.SetDefault("RECON_ACH_PREFIX", "640")

	// Journal / description / batch keyword rules
	v.SetDefault("RECON_ZBA_JOURNAL_MARKER", "ZBA")
	v.SetDefault("RECON_INTEREST_MARKER", "interest")
	v.SetDefault("RECON_JOURNAL_KEYWORDS", []string{
		"payroll:Payroll",
		"autodebit:Autodebits",
		"eftps:EFTPS",
		"vibee:Vibee AR",
		"stripe:Stripe",
		"table sales:Brinks",
	})
	v.SetDefault("RECON_SQUARE_MARKER", "square")
	v.SetDefault("RECON_TICKETING_MARKERS", []string{"front gate", "vivendi"})
	v.SetDefault("RECON_WIRE_BATCH_MARKERS", []string{"payables", "wire"})
	v.SetDefault("RECON_AR_BATCH_MARKERS", []string{"receivable", "ar", "on account", "receipt", "cash"})

	// Workbook sheet names match the upstream extract layout
	v.SetDefault("WORKBOOK_GL_SHEET", "LN - GL Account Analysis Report")
	v.SetDefault("WORKBOOK_BANK_SHEET", "Categorized")
	v.SetDefault("WORKBOOK_OUTSTANDING_SHEET", "Outstanding Check Report")
	v.SetDefault("WORKBOOK_PIVOT_SHEET", "pivot")
	v.SetDefault("WORKBOOK_GL_VS_BANK_SHEET", "GLvsBank")
	v.SetDefault("WORKBOOK_OUTSTANDING_OUT_SHEET", "OutstandingCheck")
	v.SetDefault("WORKBOOK_OUTPUT_FILE", "financial_reconciliation_report.xlsx")

	// Logging defaults - 'info' provides good balance of information vs noise
	v.SetDefault("LOG_LEVEL", "info")

	// Application defaults - development-friendly baseline configuration
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "glbank-reconciler")

	// Worker Pool defaults - bounds how many reconciliation runs execute at once
	v.SetDefault("WORKER_POOL_SIZE", 4)
}
