package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/riftlab/build-optimizer/internal/storage"
)

func main() {
	ctx := context.Background()

	url := os.Getenv("CLICKHOUSE_URL")
	if url == "" {
		url = "clickhouse://localhost:9000/lol_stats"
	}
	conn, err := storage.ConnectClickHouse(ctx, url)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	var count uint64
	err = conn.QueryRow(ctx, "SELECT count() FROM lol_stats.participants").Scan(&count)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Total participant rows: %d\n", count)

	rows, err := conn.Query(ctx, `
		SELECT champion_id, count() AS games, countIf(win) AS wins
		FROM lol_stats.participants
		GROUP BY champion_id
		ORDER BY games DESC
		LIMIT 10
	`)
	if err != nil {
		log.Fatal(err)
	}
	defer rows.Close()

	fmt.Println("Top champions by games:")
	for rows.Next() {
		var championID int32
		var games, wins uint64
		if err := rows.Scan(&championID, &games, &wins); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("  champion %-5d games=%-6d wins=%d\n", championID, games, wins)
	}
}
