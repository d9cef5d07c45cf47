// cmd/passwd/main.go prints a bcrypt hash for an admin password, using the
// configured cost and password rules.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/your-org/boutique-store/internal/config"
	"github.com/your-org/boutique-store/internal/pkg/auth"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run ./cmd/passwd <password>")
	}

	password := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	passwords := auth.NewPasswordManager(cfg.Security.BcryptCost)

	if err := passwords.ValidatePassword(password); err != nil {
		log.Printf("⚠️ Weak password: %v", err)
	}

	hash, err := passwords.HashPassword(password)
	if err != nil {
		log.Fatal("Error generating hash:", err)
	}

	fmt.Printf("Hash: %s\n", hash)

	if err := passwords.VerifyPassword(password, hash); err != nil {
		log.Fatal("Hash verification failed:", err)
	}

	fmt.Println("✅ Hash verified successfully!")
}
