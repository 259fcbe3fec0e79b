package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"server/internal/infra/credentials"
)

// geminikey manages the stored provider credential from the command line:
//
//	geminikey -set <key>   store and activate a key
//	geminikey -clear       deactivate the stored key
//	geminikey              print whether a key is configured
func main() {
	var (
		setFlag   string
		clearFlag bool
	)
	flag.StringVar(&setFlag, "set", "", "API key to store and activate (falls back to GEMINI_API_KEY)")
	flag.BoolVar(&clearFlag, "clear", false, "deactivate the stored key")
	flag.Parse()

	_ = godotenv.Load()

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := credentials.NewStore(pool, "")

	switch {
	case clearFlag:
		if err := store.Invalidate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "clear key: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("stored key deactivated")

	case setFlag != "" || os.Getenv("GEMINI_API_KEY") != "":
		key := strings.TrimSpace(setFlag)
		if key == "" {
			key = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
		}
		if err := store.SetGeminiAPIKey(ctx, key); err != nil {
			fmt.Fprintf(os.Stderr, "store key: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("key stored and activated")

	default:
		key, err := store.GeminiAPIKey(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read key: %v\n", err)
			os.Exit(1)
		}
		if key == "" {
			fmt.Println("no key configured")
		} else {
			fmt.Println("key configured")
		}
	}
}
