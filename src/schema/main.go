// Command schema prints the database schema for atlas.
package main

import (
	"fmt"
	"io"
	"os"
	"triphub/src/models"

	"ariga.io/atlas-provider-gorm/gormschema"
)

func main() {
	stmts, err := gormschema.New("postgres").Load(
		&models.User{},
		&models.Vendor{},
		&models.Ticket{},
		&models.Booking{},
		&models.Payment{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load gorm schema: %v\n", err)
		os.Exit(1)
	}
	io.WriteString(os.Stdout, stmts)
}
