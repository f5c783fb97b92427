package main

import (
	"log"

	"github.com/fixmycity/issue-service/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
