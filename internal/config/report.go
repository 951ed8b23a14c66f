package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	EnvReportTitle      = "BRAINCHECK_REPORT_TITLE"
	EnvReportDisclaimer = "BRAINCHECK_REPORT_DISCLAIMER"
	EnvReportFilename   = "BRAINCHECK_REPORT_FILENAME"
)

// ReportConfig holds report document parameters.
type ReportConfig struct {
	Title      string `toml:"title"`
	Disclaimer string `toml:"disclaimer"`
	Filename   string `toml:"filename"`
}

// Finalize applies defaults, environment overrides, and validation.
func (c *ReportConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ReportConfig) Merge(overlay *ReportConfig) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Disclaimer != "" {
		c.Disclaimer = overlay.Disclaimer
	}
	if overlay.Filename != "" {
		c.Filename = overlay.Filename
	}
}

func (c *ReportConfig) loadDefaults() {
	if c.Title == "" {
		c.Title = "MRI Report"
	}
	if c.Disclaimer == "" {
		c.Disclaimer = "Note: Report generated by BrainCheck - not a clinical diagnosis."
	}
	if c.Filename == "" {
		c.Filename = "BrainCheck_Report.pdf"
	}
}

func (c *ReportConfig) loadEnv() {
	if v := os.Getenv(EnvReportTitle); v != "" {
		c.Title = v
	}
	if v := os.Getenv(EnvReportDisclaimer); v != "" {
		c.Disclaimer = v
	}
	if v := os.Getenv(EnvReportFilename); v != "" {
		c.Filename = v
	}
}

func (c *ReportConfig) validate() error {
	if !strings.HasSuffix(c.Filename, ".pdf") {
		return fmt.Errorf("filename must end in .pdf: %q", c.Filename)
	}
	return nil
}
