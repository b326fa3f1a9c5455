package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/api"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/config"
)

func main() {
	genKeysCmd := flag.NewFlagSet("gen-keys", flag.ExitOnError)
	size := genKeysCmd.Int("size", 32, "Key length in bytes")

	pingCmd := flag.NewFlagSet("ping", flag.ExitOnError)
	backend := pingCmd.String("backend", "", "Backend base URL (defaults to BACKEND_URL)")

	if len(os.Args) < 2 {
		fmt.Println("expected 'gen-keys' or 'ping' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "gen-keys":
		genKeysCmd.Parse(os.Args[2:])
		if *size < 32 {
			fmt.Println("size must be at least 32")
			os.Exit(1)
		}
		genKeys(*size)
	case "ping":
		pingCmd.Parse(os.Args[2:])
		ping(*backend)
	default:
		fmt.Println("expected 'gen-keys' or 'ping' subcommand")
		os.Exit(1)
	}
}

func genKeys(size int) {
	fmt.Printf("CSRF_KEY=%s\n", base64.StdEncoding.EncodeToString(config.GenerateRandomBytes(size)))
	fmt.Printf("SESSION_KEY=%s\n", base64.StdEncoding.EncodeToString(config.GenerateRandomBytes(size)))
}

func ping(backend string) {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if backend == "" {
		backend = cfg.BackendURL
	}

	client := api.NewClient(backend, cfg.RequestTimeout)
	start := time.Now()
	res := client.AllCategories(context.Background())
	if !res.Success {
		log.Fatalf("Backend %s unreachable: %s", backend, res.Message)
	}
	fmt.Printf("Backend %s OK (%d categories, %s)\n", backend, len(res.Data), time.Since(start).Round(time.Millisecond))
}
