package main

import (
	"flag"
	"fmt"
	"os"

	"codefolio/internal/di"
	"codefolio/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config/config.yaml", "path to the YAML config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "mirror logs to stdout")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "codefolio: %s\n", err)
		os.Exit(1)
	}
}
