package main

import (
	"log"
	"os"

	"gradebook/internal/config"
	"gradebook/internal/database"
	"gradebook/internal/handler"
	"gradebook/internal/service"
	"gradebook/internal/storage"
)

func main() {
	// Pick the persistence backend
	var store storage.SnapshotStore
	switch config.Backend {
	case "json":
		store = storage.NewFileStore(config.DataFile)
	case "sqlite", "postgres":
		db, err := database.InitDB()
		if err != nil {
			log.Fatal("Failed to open the database:", err)
		}
		store = database.NewGradeStore(db)
	default:
		log.Fatalf("Unknown backend %q (want json, sqlite or postgres)", config.Backend)
	}

	// Load saved records; a broken backing store degrades to an empty
	// book with a warning, never a startup failure.
	gradebook := service.NewGradebookService()
	snap, err := store.Load()
	if err != nil {
		log.Println("Warning: could not read saved records, starting with empty records:", err)
	} else if len(snap) > 0 {
		log.Printf("Loaded records for %d students\n", len(snap))
	}
	gradebook.Restore(snap)

	csvService := service.NewCSVService(gradebook)
	menu := handler.NewMenuHandler(gradebook, csvService, store, os.Stdin, os.Stdout)
	if err := menu.Run(); err != nil {
		log.Fatal(err)
	}
}
