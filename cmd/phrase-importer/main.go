package main

import (
	"context"
	"flag"
	"os"

	"github.com/louisbranch/signbridge/internal/platform/config"
	phrasepack "github.com/louisbranch/signbridge/internal/tools/importer/phrasepack"
)

func main() {
	cfg, err := phrasepack.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	if err := phrasepack.Run(context.Background(), cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}
