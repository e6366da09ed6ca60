// Command migrate applies every migrations/*.sql file, in name order, to the
// database at DATABASE_URL.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		fmt.Printf("Failed to connect to DB: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	files, err := filepath.Glob("migrations/*.sql")
	if err != nil || len(files) == 0 {
		fmt.Println("No migration files found under migrations/")
		os.Exit(1)
	}
	sort.Strings(files)

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			fmt.Printf("Failed to read %s: %v\n", file, err)
			os.Exit(1)
		}
		if _, err := pool.Exec(ctx, string(sqlBytes)); err != nil {
			fmt.Printf("Migration %s failed: %v\n", file, err)
			os.Exit(1)
		}
		fmt.Printf("Applied %s\n", file)
	}
	fmt.Println("Migration successful.")
}
