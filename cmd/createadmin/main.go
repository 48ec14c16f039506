// Command createadmin provisions an admin account able to log into the API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/santi-esquerre/departamento-del-agua-api/internal/db"
	"github.com/santi-esquerre/departamento-del-agua-api/internal/repository"
	"github.com/santi-esquerre/departamento-del-agua-api/internal/service"
)

func main() {
	var (
		dsn      string
		username string
	)
	flag.StringVar(&dsn, "d", os.Getenv("DATABASE_DSN"), "db address")
	flag.StringVar(&username, "u", "", "admin username")
	flag.Parse()

	if username == "" {
		log.Fatal("please provide -u=username")
	}

	fmt.Print("Password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		log.Fatal(err)
	}

	hash, err := service.HashPassword(string(pw))
	if err != nil {
		log.Fatal(err)
	}

	postgresDB, err := db.InitPostgres(dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer postgresDB.Close()

	repo := repository.NewPostgresAuthRepository(postgresDB)
	id, err := repo.CreateAdmin(context.Background(), username, hash)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("admin %q created with id %d\n", username, id)
}
