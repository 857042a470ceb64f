package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireVars(t *testing.T) {
	err := requireVars(map[string]string{
		"B_VAR": "",
		"A_VAR": "  ",
		"C_VAR": "set",
	})
	require.Error(t, err)
	assert.Equal(t, "environment variable(s) not set: A_VAR, B_VAR", err.Error())

	assert.NoError(t, requireVars(map[string]string{"X": "y"}))
}

func TestDBConfig_DSN(t *testing.T) {
	c := &DBConfig{URL: "postgres://u:p@db:5432/resumes"}
	assert.Equal(t, "postgres://u:p@db:5432/resumes", c.DSN())
	assert.NoError(t, c.Validate())

	c = &DBConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "resumes", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=resumes port=5432 sslmode=disable", c.DSN())
	assert.NoError(t, c.Validate())

	c = &DBConfig{Port: "5432"}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")
	assert.Contains(t, err.Error(), "DB_NAME")
}

func TestLLMConfig_Validate(t *testing.T) {
	assert.Error(t, (&LLMConfig{Provider: ProviderOpenAI}).Validate())
	assert.NoError(t, (&LLMConfig{Provider: ProviderOpenAI, Token: "hf_x"}).Validate())

	err := (&LLMConfig{Provider: "bogus"}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestStorageAndMongoConfig_Validate(t *testing.T) {
	err := (&StorageConfig{Endpoint: "https://x.supabase.co/storage/v1/s3"}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_ACCESS_KEY")
	assert.Contains(t, err.Error(), "STORAGE_SECRET_KEY")

	assert.Error(t, (&MongoConfig{}).Validate())
	assert.NoError(t, (&MongoConfig{URI: "mongodb://localhost"}).Validate())
}

func TestExtractorConfig_Validate(t *testing.T) {
	assert.NoError(t, (&ExtractorConfig{PDFEngine: PDFEngineMuPDF}).Validate())
	assert.NoError(t, (&ExtractorConfig{PDFEngine: PDFEngineNative}).Validate())
	assert.Error(t, (&ExtractorConfig{PDFEngine: "poppler"}).Validate())
}
