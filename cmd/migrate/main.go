package main

import (
	"fmt"
	"os"

	"github.com/YugandharPise/SME-HR/internal/config"
	"github.com/YugandharPise/SME-HR/internal/store"
)

// usage: migrate [up|down|drop|version]
func main() {
	action := "up"
	if len(os.Args) > 1 {
		action = os.Args[1]
	}

	db, err := config.LoadDatabase(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	result, err := store.Migrate(db.URL(), action)
	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate %s: %v\n", action, err)
		os.Exit(1)
	}
	fmt.Println(result)
}
