package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"scholarship-scraper/internal/scraper"
)

// LoadRules загружает таблицу правил из YAML и накладывает её на встроенную
func LoadRules(filePath string) (*scraper.RuleSet, error) {
	if filePath == "" {
		return nil, fmt.Errorf("rules file path is empty")
	}

	// Проверяем существование файла
	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("rules file not found: %s: %w", filePath, err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open rules file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close rules file: %v\n", closeErr)
		}
	}()

	var rulesFile scraper.RulesFile
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&rulesFile); err != nil {
		return nil, fmt.Errorf("failed to parse rules YAML: %w", err)
	}

	rules, err := rulesFile.Compile()
	if err != nil {
		return nil, fmt.Errorf("invalid rules in %s: %w", filePath, err)
	}

	return rules, nil
}

// LoadRuleSet возвращает правила из rules_file или встроенные.
// Относительный путь считается от каталога конфига.
func (c *Config) LoadRuleSet(configPath string) (*scraper.RuleSet, error) {
	if c.RulesFile == "" {
		return scraper.DefaultRules(), nil
	}

	filePath := c.RulesFile
	if !filepath.IsAbs(filePath) && configPath != "" {
		filePath = filepath.Join(filepath.Dir(configPath), filePath)
	}

	return LoadRules(filePath)
}
