package main

type (
	ServiceConfig struct {
		Environment string `env:"ENVIRONMENT" env-default:"development"`

		Port      int    `env:"PORT" env-default:"8080"`
		SentryDSN string `env:"SENTRY_DSN"`

		// ReportsDir is the directory scanned for pat_report output files.
		ReportsDir string `env:"REPORTS_DIR" env-default:"."`

		// TableTitle is the table marker used when a request does not
		// name one; it matches the default pat_report calltree table.
		TableTitle string `env:"CALLTREE_TABLE_TITLE" env-default:"Function Calltree View"`
	}
)
