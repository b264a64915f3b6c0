package main

import (
	"log"

	"github.com/rccgrog/rogsite/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
