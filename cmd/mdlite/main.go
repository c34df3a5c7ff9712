package main

import (
	"log"

	"github.com/riverfjs/mdlite-go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
