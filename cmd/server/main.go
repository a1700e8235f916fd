// path: cmd/server/main.go
package main

import (
	"flag"
	"log"

	"varchess/internal/httpx"
	"varchess/internal/store"
)

func main() {
	cfg, err := httpx.ConfigFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	addr := flag.String("addr", cfg.Addr, "listen address")
	dataDir := flag.String("data", cfg.DataDir, "badger database directory")
	flag.Parse()

	st, err := store.Open(*dataDir)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Printf("store close: %v", err)
		}
	}()

	srv := httpx.NewServer(st)
	if err := srv.Listen(*addr); err != nil {
		log.Fatal(err)
	}
}
