// Command admin creates the first administrator account, or promotes an
// existing account, using the server's database configuration.
package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/recrutement/internal/admin"
	"github.com/dmitrijs2005/recrutement/internal/buildinfo"
	"github.com/dmitrijs2005/recrutement/internal/server/config"
	"github.com/dmitrijs2005/recrutement/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/recrutement/internal/server/services"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	db, err := repomanager.OpenDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	m := repomanager.NewPostgresRepositoryManager()
	if cfg.MigrateOnStart {
		if err := m.RunMigrations(ctx, db); err != nil {
			log.Fatalf("migration error: %v", err)
		}
	}

	users := services.NewUserService(db, m, nil, nil)
	app := admin.NewApp(users, os.Stdin, os.Stdout, int(os.Stdin.Fd()))
	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}
