package config

import (
	"os"
	"sync"
)

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

var (
	mongoConfig *MongoConfig
	mongoOnce   sync.Once
)

func LoadMongoConfig() *MongoConfig {
	mongoOnce.Do(func() {
		mongoConfig = &MongoConfig{
			URI:        os.Getenv("MONGO_URI"),
			Database:   getEnv("MONGO_DB", "resume_db"),
			Collection: getEnv("MONGO_COLLECTION", "candidates"),
		}
	})
	return mongoConfig
}

func (c *MongoConfig) Validate() error {
	return requireVars(map[string]string{"MONGO_URI": c.URI})
}
