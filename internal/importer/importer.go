package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"agrimart/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

var requiredHeaders = []string{"name", "category", "price"}

// CSVImporter reads catalog CSV files and inserts/updates products. Columns
// are id, name, description, category, price, unit, stock and image_url; only
// name, category and price are required.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and upserts one product per row. Blank rows are
// skipped; the first invalid row stops the import.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, h := range requiredHeaders {
		if _, ok := index[h]; !ok {
			return 0, fmt.Errorf("missing column %q", h)
		}
	}

	imported := 0
	for line := 2; ; line++ {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row %d: %w", line, err)
		}
		if blank(record) {
			continue
		}

		p, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", line, err)
		}
		if _, err := i.productRepo.Upsert(ctx, p); err != nil {
			return imported, fmt.Errorf("upsert product %q: %w", p.Name, err)
		}
		imported++
	}

	return imported, nil
}

func parseRow(record []string, index map[string]int) (domain.Product, error) {
	p := domain.Product{
		ID:          pick(record, index, "id"),
		Name:        pick(record, index, "name"),
		Description: pick(record, index, "description"),
		Category:    domain.Category(strings.ToLower(pick(record, index, "category"))),
		Unit:        pick(record, index, "unit"),
		ImageURL:    pick(record, index, "image_url"),
	}
	if p.Name == "" {
		return p, errors.New("name required")
	}
	if !p.Category.Valid() {
		return p, fmt.Errorf("unknown category %q for %q", p.Category, p.Name)
	}
	if p.ID != "" {
		if _, err := uuid.Parse(p.ID); err != nil {
			return p, fmt.Errorf("invalid id for %q: %s", p.Name, p.ID)
		}
	}

	price, err := decimal.NewFromString(pick(record, index, "price"))
	if err != nil {
		return p, fmt.Errorf("invalid price for %q: %w", p.Name, err)
	}
	if price.IsNegative() {
		return p, fmt.Errorf("negative price for %q", p.Name)
	}
	p.Price = price.Round(2)

	if s := pick(record, index, "stock"); s != "" {
		stock, err := strconv.Atoi(s)
		if err != nil || stock < 0 {
			return p, fmt.Errorf("invalid stock for %q: %s", p.Name, s)
		}
		p.Stock = stock
	}
	return p, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
