// Command dbctl manages the database outside the server: creating the
// database and tables, seeding demo data, dropping tables and removing users.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Skotchmaster/feb_ecommerce/internal/config"
	"github.com/Skotchmaster/feb_ecommerce/internal/db"
	"github.com/Skotchmaster/feb_ecommerce/internal/repo"
)

const usage = `usage: dbctl <command> [flags]

commands:
  createdb               create the database named in DATABASE_URL
  create                 create tables
  seed                   insert demo users and products
  drop                   drop tables
  delete-user -email X   delete a user and the products it owns
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, cfg.DatabaseURL, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func run(ctx context.Context, dsn, cmd string, args []string) error {
	if cmd == "createdb" {
		created, err := db.CreateDatabase(ctx, dsn)
		if err != nil {
			return err
		}
		if created {
			fmt.Println("Database created")
		} else {
			fmt.Println("Database already exists")
		}
		return nil
	}

	gdb, err := db.Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	switch cmd {
	case "create":
		if err := db.Migrate(gdb); err != nil {
			return err
		}
		fmt.Println("Tables created")
	case "seed":
		if err := db.Seed(ctx, gdb); err != nil {
			return err
		}
		fmt.Println("Tables seeded")
	case "drop":
		if err := db.Drop(gdb); err != nil {
			return err
		}
		fmt.Println("Tables dropped")
	case "delete-user":
		fs := flag.NewFlagSet("delete-user", flag.ContinueOnError)
		email := fs.String("email", "", "email of the user to delete")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *email == "" {
			return fmt.Errorf("-email is required")
		}
		r := &repo.GormRepo{DB: gdb}
		if err := r.DeleteUserByEmail(ctx, *email); err != nil {
			return err
		}
		fmt.Printf("User %s deleted\n", *email)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}
