package config

import (
	"os"
	"sync"
)

// StorageConfig points at an S3-compatible endpoint (Supabase Storage exposes one at
// <project>/storage/v1/s3).
type StorageConfig struct {
	Endpoint   string
	Region     string
	AccessKey  string
	SecretKey  string
	Bucket     string
	PathPrefix string
}

var (
	storageConfig *StorageConfig
	storageOnce   sync.Once
)

func LoadStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		storageConfig = &StorageConfig{
			Endpoint:   os.Getenv("STORAGE_ENDPOINT"),
			Region:     getEnv("STORAGE_REGION", "auto"),
			AccessKey:  os.Getenv("STORAGE_ACCESS_KEY"),
			SecretKey:  os.Getenv("STORAGE_SECRET_KEY"),
			Bucket:     getEnv("STORAGE_BUCKET", "resumes"),
			PathPrefix: getEnv("STORAGE_PATH_PREFIX", "public"),
		}
	})
	return storageConfig
}

func (c *StorageConfig) Validate() error {
	return requireVars(map[string]string{
		"STORAGE_ENDPOINT":   c.Endpoint,
		"STORAGE_ACCESS_KEY": c.AccessKey,
		"STORAGE_SECRET_KEY": c.SecretKey,
	})
}
