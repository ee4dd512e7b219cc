package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	cfg := FromViper(v)

	assert.Equal(t, "category_mappings.yaml", cfg.MappingsPath)
	assert.Equal(t, "variant_extractions.yaml", cfg.SchemaPath)
	assert.Equal(t, "reports", cfg.ReportDir)
	assert.Equal(t, "|", cfg.CategorySeparator)
	assert.Equal(t, " > ", cfg.CategoryDelimiter)
	assert.Equal(t, "Tovary a kategórie", cfg.CategoryPrefix)
	assert.True(t, cfg.Override)
	assert.True(t, cfg.MapCategories)
	assert.Equal(t, []string{"Liebherr"}, cfg.ExcludedManufacturers)
}

func TestOverridesWin(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyReportDir, "/tmp/out")
	v.Set(KeyOverride, false)
	v.Set(KeyExcluded, []string{"Acme", "Liebherr"})

	cfg := FromViper(v)
	assert.Equal(t, "/tmp/out", cfg.ReportDir)
	assert.False(t, cfg.Override)
	assert.Equal(t, []string{"Acme", "Liebherr"}, cfg.ExcludedManufacturers)
}
