package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"profilo-crm/internal/config"
	"profilo-crm/internal/db"
	"profilo-crm/internal/domain"
	"profilo-crm/internal/importer"
	"profilo-crm/internal/repository/customer"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to customer CSV file")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, customer.NewPostgres(pool, nil))

	start := time.Now()
	result, err := imp.Run(ctx)
	if err != nil {
		var rejected *domain.ImportRejectedError
		if errors.As(err, &rejected) {
			fmt.Fprintf(os.Stderr, "import rejected, nothing was persisted:\n")
			for _, row := range rejected.Rows {
				fmt.Fprintf(os.Stderr, "  row %d: %s\n", row.Row, row.Reason)
			}
			os.Exit(1)
		}
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d of %d customers in %s\n",
		result.Inserted, result.Submitted, time.Since(start).Truncate(time.Millisecond))
}
