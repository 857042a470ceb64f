package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type validator interface {
	Validate() error
}

// ValidateAll checks every config section and reports all problems at once.
func ValidateAll() error {
	sections := []validator{
		LoadDBConfig(),
		LoadStorageConfig(),
		LoadMongoConfig(),
		LoadLLMConfig(),
		LoadExtractorConfig(),
	}
	var errs []error
	for _, s := range sections {
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func requireVars(vars map[string]string) error {
	var missing []string
	for name, value := range vars {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("environment variable(s) not set: %s", strings.Join(missing, ", "))
}
