package main

import (
	"log"

	"github.com/mhoffer/parkcast/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
