package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"gitlab.com/dirk.krummacker/contacts-store/internal/config"
	"gitlab.com/dirk.krummacker/contacts-store/internal/logging"
	"gitlab.com/dirk.krummacker/contacts-store/internal/store"
)

// Usage examples on the command line:
// > DATA_FILE=../../database/contacts.json go run main.go
// > DATA_FILE=../../database/contacts.json go run main.go -check
// > STORE_BACKEND=mysql DBHOST=localhost DBUSER=dirk DBPWD=bullo92 go run main.go -file=../../scripts/database.sql
func main() {
	filePtr := flag.String("file", "scripts/database.sql", "the sql file to execute for the mysql backend")
	checkPtr := flag.Bool("check", false, "only report whether the data file can be accessed")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	switch cfg.StoreBackend {
	case config.BackendMySQL:
		if *checkPtr {
			logger.Error("-check is only supported for the file backend")
			os.Exit(2)
		}
		if err := runScript(cfg, *filePtr); err != nil {
			logger.Error("migration failed", "file", *filePtr, "err", err)
			os.Exit(1)
		}
		logger.Info("migration done", "file", *filePtr)
	case config.BackendMemory:
		logger.Info("nothing to migrate for the memory backend")
	default:
		fileStore := store.NewFileStore(cfg.DataFile)
		if *checkPtr {
			if err := fileStore.CheckAccess(); err != nil {
				logger.Error("Can not be accessed", "file", fileStore.Path(), "err", err)
				os.Exit(1)
			}
			logger.Info("Can be accessed", "file", fileStore.Path())
			return
		}
		if err := fileStore.Init(context.Background()); err != nil {
			logger.Error("could not initialize the data file", "file", fileStore.Path(), "err", err)
			os.Exit(1)
		}
		logger.Info("data file ready", "file", fileStore.Path())
	}
}

// runScript executes the statements of the SQL file one by one. A statement ends with the line
// that contains a semicolon.
func runScript(cfg *config.Config, fileName string) error {
	sqlDB, err := store.OpenMySQL(cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBName)
	if err != nil {
		return err
	}
	db := sqlx.NewDb(sqlDB, "mysql")
	defer db.Close()

	readFile, err := os.Open(fileName) // nosemgrep
	if err != nil {
		return err
	}
	defer readFile.Close()

	fileScanner := bufio.NewScanner(readFile)
	fileScanner.Split(bufio.ScanLines)
	builder := strings.Builder{}
	for fileScanner.Scan() {
		line := fileScanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		builder.WriteString(line)
		builder.WriteString(" ")
		if strings.Contains(line, ";") {
			if _, err := db.Exec(builder.String()); err != nil {
				return fmt.Errorf("execute %q: %w", strings.TrimSpace(builder.String()), err)
			}
			builder = strings.Builder{}
		}
	}
	return fileScanner.Err()
}
