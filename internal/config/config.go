// Package config loads application settings through viper. Values come
// from, in increasing precedence: built-in defaults, the gastroflow.yaml
// config file, environment variables and command-line flags bound by the
// CLI layer.
package config

import (
	"os"

	"github.com/spf13/viper"
)

// Settings keys.
const (
	KeyMappingsPath    = "categories.mappings"
	KeySeparator       = "categories.separator"
	KeyDelimiter       = "categories.delimiter"
	KeyPrefix          = "categories.prefix"
	KeySchemaPath      = "variants.schema"
	KeyExcluded        = "variants.excluded-manufacturers"
	KeyReportDir       = "reports.dir"
	KeyOverride        = "override"
	KeyMapCategories   = "map-categories"
	KeyDetectVariants  = "detect-variants"
	KeyGenerateReports = "generate-reports"
)

// Config is the resolved application configuration.
type Config struct {
	MappingsPath string
	SchemaPath   string
	ReportDir    string

	CategorySeparator string
	CategoryDelimiter string
	CategoryPrefix    string

	Override              bool
	MapCategories         bool
	DetectVariants        bool
	GenerateReports       bool
	ExcludedManufacturers []string
}

// SetDefaults registers the built-in defaults on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyMappingsPath, "category_mappings.yaml")
	v.SetDefault(KeySeparator, "|")
	v.SetDefault(KeyDelimiter, " > ")
	v.SetDefault(KeyPrefix, "Tovary a kategórie")
	v.SetDefault(KeySchemaPath, "variant_extractions.yaml")
	v.SetDefault(KeyExcluded, []string{"Liebherr"})
	v.SetDefault(KeyReportDir, "reports")
	v.SetDefault(KeyOverride, true)
	v.SetDefault(KeyMapCategories, true)
	v.SetDefault(KeyDetectVariants, true)
	v.SetDefault(KeyGenerateReports, true)
}

// FromViper reads the configuration out of a viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		MappingsPath:          v.GetString(KeyMappingsPath),
		SchemaPath:            v.GetString(KeySchemaPath),
		ReportDir:             v.GetString(KeyReportDir),
		CategorySeparator:     v.GetString(KeySeparator),
		CategoryDelimiter:     v.GetString(KeyDelimiter),
		CategoryPrefix:        v.GetString(KeyPrefix),
		Override:              v.GetBool(KeyOverride),
		MapCategories:         v.GetBool(KeyMapCategories),
		DetectVariants:        v.GetBool(KeyDetectVariants),
		GenerateReports:       v.GetBool(KeyGenerateReports),
		ExcludedManufacturers: v.GetStringSlice(KeyExcluded),
	}
}

// Load reads the configuration from the global viper instance.
func Load() *Config {
	return FromViper(viper.GetViper())
}

// GetString returns a string value checking both viper and the raw
// environment, so variables set outside the config machinery still win
// when viper has nothing.
func GetString(key string) string {
	viperValue := viper.GetString(key)
	if viperValue == "" {
		return os.Getenv(key)
	}
	return viperValue
}
