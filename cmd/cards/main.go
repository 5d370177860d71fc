// Command cards provisions scratch cards.  It generates a batch of unused
// cards with random numbers and PINs and prints them, one per line, so an
// administrator can hand them to the bursary for printing.
package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/joho/godotenv"

	"github.com/campusgate/student-portal/internal/config"
	"github.com/campusgate/student-portal/internal/database"
	"github.com/campusgate/student-portal/internal/repository"
)

func main() {
	count := flag.Int("count", 10, "number of cards to generate")
	denomination := flag.Float64("denomination", 100, "value loaded on each card")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	cards := repository.NewScratchCardRepo(db)

	for i := 0; i < *count; i++ {
		number, err := randomDigits(16)
		if err != nil {
			log.Fatalf("generate card number: %v", err)
		}
		pin, err := randomDigits(6)
		if err != nil {
			log.Fatalf("generate pin: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		id, err := cards.Create(ctx, number, pin, *denomination)
		cancel()
		if err != nil {
			log.Fatalf("create card: %v", err)
		}
		fmt.Printf("id=%d number=%s pin=%s denomination=%.2f\n", id, number, pin, *denomination)
	}
}

// randomDigits returns n decimal digits from crypto/rand.
func randomDigits(n int) (string, error) {
	buf := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		buf = append(buf, byte('0'+d.Int64()))
	}
	return string(buf), nil
}
