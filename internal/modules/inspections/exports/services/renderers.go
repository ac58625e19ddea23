package services

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/parquet-go/parquet-go"

	claimsDto "fpm-inspections-core/internal/modules/core-services/claims/dto"
	claimsServices "fpm-inspections-core/internal/modules/core-services/claims/services"
)

// Formats d'export
const (
	FormatCSV     = "csv"
	FormatJSON    = "json"
	FormatParquet = "parquet"
)

// Dataset résultat d'export : table à plat pour CSV/JSON, lignes typées pour Parquet
type Dataset struct {
	Name    string
	Table   claimsDto.ExportTable
	parquet func(w io.Writer) error
}

// Renderer sérialise un Dataset
type Renderer interface {
	ContentType() string
	Extension() string
	Render(w io.Writer, ds *Dataset) error
}

// RendererFor - csv par défaut
func RendererFor(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatCSV:
		return csvRenderer{}, nil
	case FormatJSON:
		return jsonRenderer{}, nil
	case FormatParquet:
		return parquetRenderer{}, nil
	default:
		return nil, claimsServices.NewValidationError(map[string]string{
			"format": fmt.Sprintf("Format non supporté: %s (csv, json, parquet)", format),
		})
	}
}

type csvRenderer struct{}

func (csvRenderer) ContentType() string { return "text/csv; charset=utf-8" }
func (csvRenderer) Extension() string   { return FormatCSV }

// Render - entête = libellés, dans l'ordre des colonnes
func (csvRenderer) Render(w io.Writer, ds *Dataset) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(ds.Table.Columns))
	for i, c := range ds.Table.Columns {
		header[i] = ds.Table.Label(c)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("écriture entête CSV: %w", err)
	}

	record := make([]string, len(ds.Table.Columns))
	for _, row := range ds.Table.Rows {
		for i, c := range ds.Table.Columns {
			record[i] = cell(row[c])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("écriture ligne CSV: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

type jsonRenderer struct{}

func (jsonRenderer) ContentType() string { return "application/json; charset=utf-8" }
func (jsonRenderer) Extension() string   { return FormatJSON }

func (jsonRenderer) Render(w io.Writer, ds *Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ds.Table)
}

type parquetRenderer struct{}

func (parquetRenderer) ContentType() string { return "application/vnd.apache.parquet" }
func (parquetRenderer) Extension() string   { return FormatParquet }

func (parquetRenderer) Render(w io.Writer, ds *Dataset) error {
	if ds.parquet == nil {
		return fmt.Errorf("export %s: pas de lignes typées", ds.Name)
	}
	return ds.parquet(w)
}

// writeParquet écrit toutes les lignes puis ferme le writer (pied de fichier)
func writeParquet[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("écriture parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("fermeture parquet: %w", err)
	}
	return nil
}
