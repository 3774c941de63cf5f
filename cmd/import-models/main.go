// Command import-models loads a catalog export (JSON or CSV) and writes
// the aggregated ranking records to the model_rankings Postgres table.
// One-off tooling; the serving path never reads from the database.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"model_rankings/internal/models"
	"model_rankings/internal/rankings"
	"model_rankings/internal/sources"
	"model_rankings/internal/storage"
)

func main() {
	var (
		file   = flag.String("file", "", "catalog export to import (.json or .csv)")
		source = flag.String("source", "import", "source name recorded on the imported records")
	)
	flag.Parse()

	if *file == "" {
		log.Fatal("missing -file")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	raw, err := loadCatalog(*file)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	list, err := rankings.Aggregate(
		[]rankings.Catalog{{Source: *source, Models: raw}},
		sources.BenchmarkData{}, "benchmarks", time.Now(),
	)
	if err != nil {
		log.Fatalf("Aggregation failed: %v", err)
	}

	db, err := storage.NewDB(storage.DBConfig{
		DSN:             dsn,
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 1 * time.Minute,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	repo := storage.NewRankingRepository(db)
	if err := repo.UpsertAll(ctx, list); err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Imported %d ranking records from %s", len(list), *file)
}

func loadCatalog(path string) ([]models.RawModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadJSON(f)
	case ".csv":
		return loadCSV(f)
	default:
		return nil, fmt.Errorf("unsupported file extension on %s", path)
	}
}

// loadJSON accepts either the catalog envelope or a bare array.
func loadJSON(r io.Reader) ([]models.RawModel, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var envelope models.RawCatalogResponse
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		return envelope.Data, nil
	}

	var list []models.RawModel
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to parse JSON catalog: %w", err)
	}
	return list, nil
}

// loadCSV expects a header row: id,name,context_length,prompt,completion,modality
func loadCSV(r io.Reader) ([]models.RawModel, error) {
	reader := csv.NewReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV catalog: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("CSV catalog has no data rows")
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	list := make([]models.RawModel, 0, len(rows)-1)
	for _, row := range rows[1:] {
		contextLength, _ := strconv.Atoi(field(row, "context_length"))
		list = append(list, models.RawModel{
			ID:            field(row, "id"),
			Name:          field(row, "name"),
			ContextLength: contextLength,
			Pricing: models.RawPricing{
				Prompt:     field(row, "prompt"),
				Completion: field(row, "completion"),
			},
			Architecture: models.RawArchitecture{
				Modality: field(row, "modality"),
			},
		})
	}
	return list, nil
}
