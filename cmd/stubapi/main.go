package main

import (
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/userdeck/userdeck/internal/logging"
	"github.com/userdeck/userdeck/internal/stubapi"
)

func main() {

	addr := flag.String("addr", ":5000", "listen address")
	secret := flag.String("secret", "dev-secret", "JWT signing secret")
	tokenTTL := flag.Int("ttl", 3600, "token lifetime in seconds")
	flag.Parse()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	store := stubapi.NewStore()
	store.Seed()

	srv := stubapi.NewServer(store, []byte(*secret), time.Duration(*tokenTTL)*time.Second, logger)

	log.Printf("stub directory API listening on %s", *addr)
	if err := http.ListenAndServe(*addr, srv.Router()); err != nil {
		log.Fatalf("%v", err)
	}
}
