package config

import (
	"fmt"
	"sync"
)

const (
	PDFEngineMuPDF  = "mupdf"
	PDFEngineNative = "native"
)

type ExtractorConfig struct {
	PDFEngine string
}

var (
	extractorConfig *ExtractorConfig
	extractorOnce   sync.Once
)

func LoadExtractorConfig() *ExtractorConfig {
	extractorOnce.Do(func() {
		extractorConfig = &ExtractorConfig{
			PDFEngine: getEnv("PDF_ENGINE", PDFEngineMuPDF),
		}
	})
	return extractorConfig
}

func (c *ExtractorConfig) Validate() error {
	if c.PDFEngine != PDFEngineMuPDF && c.PDFEngine != PDFEngineNative {
		return fmt.Errorf("unsupported PDF_ENGINE %q", c.PDFEngine)
	}
	return nil
}
