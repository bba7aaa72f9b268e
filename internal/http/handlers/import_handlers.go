package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/furniture-storefront/internal/repo"
)

const maxImportSize = 10 << 20

// csvColumns lists the recognised headers; only name and price are required.
var csvColumns = []string{"name", "slug", "sku", "description", "price", "sale_price", "stock_quantity", "status", "featured", "category"}

type csvRow struct {
	line   int
	fields map[string]string
}

func parseCSV(r io.Reader) ([]csvRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, errors.New("invalid CSV header")
	}
	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "price"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing %q column", required)
		}
	}

	var rows []csvRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		row := csvRow{line: line, fields: map[string]string{}}
		for _, col := range csvColumns {
			if i, ok := index[col]; ok && i < len(record) {
				row.fields[col] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// toRequest converts a row, reporting the first unparsable column.
func (row csvRow) toRequest() (ProductRequest, error) {
	req := ProductRequest{
		Name:        row.fields["name"],
		Slug:        row.fields["slug"],
		SKU:         row.fields["sku"],
		Description: row.fields["description"],
		Status:      row.fields["status"],
		Featured:    row.fields["featured"] == "true",
	}

	price, err := decimalFromString(row.fields["price"])
	if err != nil {
		return req, errors.New("invalid price")
	}
	req.Price = price

	if s := row.fields["sale_price"]; s != "" {
		sale, err := decimalFromString(s)
		if err != nil {
			return req, errors.New("invalid sale_price")
		}
		req.SalePrice = decimal.NewNullDecimal(sale)
	}
	if s := row.fields["stock_quantity"]; s != "" {
		qty, err := strconv.Atoi(s)
		if err != nil {
			return req, errors.New("invalid stock_quantity")
		}
		req.StockQuantity = qty
	}
	return req, nil
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Rows are matched on slug. mode=skip (default) reports existing slugs, mode=update overwrites them.
// @Tags admin-products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {object} ErrorResponse
// @Router /admin/products/import [post]
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip" // default
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	rows, err := parseCSV(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	categoryIDs := map[string]*string{}
	imported := 0
	errorsList := []ValidationError{}
	rowError := func(row csvRow, format string, args ...any) {
		errorsList = append(errorsList, ValidationError{
			Field:       fmt.Sprintf("row %d", row.line),
			Description: fmt.Sprintf(format, args...),
		})
	}

	for _, row := range rows {
		req, err := row.toRequest()
		if err != nil {
			rowError(row, "%v", err)
			continue
		}
		normalizeProduct(&req)
		if errs := validateProduct(req); len(errs) > 0 {
			rowError(row, "%s: %s", errs[0].Field, errs[0].Description)
			continue
		}

		if slug := row.fields["category"]; slug != "" {
			id, cached := categoryIDs[slug]
			if !cached {
				node, err := taxonomyRepo.GetCategoryBySlug(ctx, slug)
				if err == nil {
					id = &node.ID
				}
				categoryIDs[slug] = id
			}
			if id == nil {
				rowError(row, "unknown category %q", slug)
				continue
			}
			req.CategoryID = id
		}

		product := req.toProduct()
		existing, err := productRepo.GetBySlug(ctx, product.Slug)
		switch {
		case err == nil && mode == "skip":
			rowError(row, "product %q already exists", product.Slug)
			continue
		case err == nil:
			product.ID = existing.ID
			product.Images, product.Gallery = existing.Images, existing.Gallery
			_, err = productRepo.Update(ctx, product)
		case errors.Is(err, repo.ErrProductNotFound):
			_, err = productRepo.Create(ctx, product)
		}
		if err != nil {
			rowError(row, "could not save %q", product.Slug)
			continue
		}
		imported++
	}

	respond(w, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	})
}
