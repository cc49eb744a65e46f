// Package main starts the translation service and handles termination.
//
// The process is a transport adapter around the resolution pipeline; phrase
// and letter data stay owned by the upstream catalog services.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	translatecmd "github.com/louisbranch/signbridge/internal/cmd/translate"
)

func main() {
	cfg, err := translatecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[TRANSLATE] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := translatecmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
