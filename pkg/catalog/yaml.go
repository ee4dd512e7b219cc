package catalog

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/gastroflow/gastroflow/pkg/constants"
	"github.com/gastroflow/gastroflow/pkg/errors"
)

// LoadTable reads a product table from a YAML file. The file holds a plain
// list of product records; record order is preserved.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	var products []Product
	if err := yaml.Unmarshal(data, &products); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return FromProducts(products), nil
}

// SaveTable writes the table to a YAML file in insertion order.
func SaveTable(t *Table, path string) error {
	products := make([]Product, 0, t.Len())
	for _, p := range t.Products() {
		products = append(products, *p)
	}
	data, err := yaml.Marshal(products)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
