package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/takakv/bpattest/cmd/root"
)

func main() {
	err := root.GetRootCmd().Execute()
	if err != nil {
		log.Fatalf("bpattest: %s", err.Error())
	}
}
