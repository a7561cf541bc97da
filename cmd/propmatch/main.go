// Package main provides the CLI entrypoint for propmatch.
//
// propmatch loads Go packages, matches the properties of an origin type
// against a target type and reports where every origin property goes,
// including flattened names such as CustomerEmail resolving to
// Customer.Email.
package main

import (
	"fmt"
	"log"
	"os"

	"propmatch/internal/cli"
)

var version = "dev"

func main() {
	cfg, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}

	if err := cli.NewRunner(os.Stdout, os.Stderr).Run(cfg); err != nil {
		log.Fatal(err)
	}
}
