package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "check-deps":
		err = runCheckDeps()
	case "wait-for-db":
		err = runWaitForDB()
	case "migrate":
		err = runMigrate(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: devtool <command> [args...]")
	fmt.Println("Commands:")
	fmt.Println("  check-deps   Check for required dependencies")
	fmt.Println("  wait-for-db  Wait for database to be ready (with retries)")
	fmt.Println("  migrate      Manage database migrations (up, down, status, create)")
}
