package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tienda-storefront/internal/domain"
	"tienda-storefront/internal/repository/remote"
)

// ProductWriter persists one product under its id.
type ProductWriter interface {
	Set(ctx context.Context, collection, id string, data map[string]interface{}) error
}

// CSVImporter reads a catalog CSV export (id,name,price,category,image,
// description) and writes products into the remote store.
type CSVImporter struct {
	reader *csv.Reader
	store  ProductWriter
}

func NewCSVImporter(r io.Reader, store ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{reader: csvr, store: store}
}

// Run parses CSV rows and upserts products by id. It returns the number of
// products written.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		product, err := parseRow(record, index)
		if err != nil {
			return imported, err
		}
		if product == nil {
			continue
		}

		data, err := remote.Encode(*product)
		if err != nil {
			return imported, fmt.Errorf("encode product %s: %w", product.ID, err)
		}
		if err := i.store.Set(ctx, remote.CollectionProducts, product.ID, data); err != nil {
			return imported, fmt.Errorf("import product %s: %w", product.ID, err)
		}
		imported++
	}
	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func parseRow(record []string, index map[string]int) (*domain.Product, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	id := field("id")
	name := field("name")
	if id == "" && name == "" {
		return nil, nil // blank row
	}
	if id == "" || name == "" {
		return nil, fmt.Errorf("row missing id or name: %v", record)
	}

	price, err := strconv.ParseFloat(field("price"), 64)
	if err != nil {
		return nil, fmt.Errorf("product %s: invalid price %q", id, field("price"))
	}
	if price < 0 {
		return nil, fmt.Errorf("product %s: negative price", id)
	}

	return &domain.Product{
		ID:          id,
		Name:        name,
		Price:       price,
		Category:    field("category"),
		Image:       field("image"),
		Description: field("description"),
	}, nil
}
