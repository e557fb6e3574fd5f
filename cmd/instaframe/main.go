package main

import (
	"fmt"
	"log"
	"os"

	"github.com/mkume/instaframe"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("instaframe %s\n", version)
		return
	}

	app := instaframe.New(instaframe.ConfigFromEnv())
	log.Printf("starting instaframe on %s", app.Config.Addr)
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
