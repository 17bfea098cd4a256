// Command seeduser creates or updates a user: credential, profile and,
// optionally, the seller the user sells as. It writes to DynamoDB only; with
// STORE_DRIVER=memory set SEED_EMAIL and SEED_PASSWORD on the API instead.
//
//	go run ./cmd/seeduser -email admin@example.com -password 1234 -name "Admin" -role administrator
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"presupuestos_service/internal/adapter/persistence/repository"
	"presupuestos_service/internal/config"
	"presupuestos_service/internal/domain/entities"
	"presupuestos_service/internal/infrastructure/database"
	"presupuestos_service/internal/infrastructure/identity"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	email := flag.String("email", "admin@example.com", "login email")
	password := flag.String("password", "1234", "login password")
	name := flag.String("name", "Admin Demo", "display name")
	role := flag.String("role", string(entities.RoleAdministrator), "administrator, seller or guest")
	sellerID := flag.String("seller-id", "", "seller id, also written to the seller directory")
	sellerCode := flag.String("seller-code", "", "seller code, defaults to the seller id")
	uid := flag.String("uid", "", "user id, generated when empty")
	flag.Parse()

	cfg, err := config.LoadStore()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if cfg.StoreDriver == config.StoreMemory {
		log.Fatalf("STORE_DRIVER=memory lives inside the API process; set SEED_EMAIL and SEED_PASSWORD there instead")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.ConnectDynamoDB(ctx, cfg)
	if err != nil {
		log.Fatalf("dynamodb connect error: %v", err)
	}
	creds := repository.NewCredentialDynamoRepository(client, cfg.CredentialsTable)
	profiles := repository.NewProfileDynamoRepository(client, cfg.ProfilesTable)
	sellers := repository.NewSellerDynamoRepository(client, cfg.SellersTable)

	normalized := identity.NormalizeEmail(*email)
	existing, err := creds.GetByEmail(ctx, normalized)
	if err != nil {
		log.Fatalf("credential lookup error: %v", err)
	}
	id := *uid
	switch {
	case id != "":
	case existing.UID != "":
		id = existing.UID
	default:
		id = uuid.NewString()
	}

	hash, err := identity.HashPassword(*password)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}
	if err := creds.Put(ctx, entities.Credential{Email: normalized, UID: id, PasswordHash: hash}); err != nil {
		log.Fatalf("credential write error: %v", err)
	}

	profile := entities.Profile{
		UID:      id,
		Email:    normalized,
		Name:     *name,
		Role:     entities.ParseRole(*role),
		SellerID: *sellerID,
	}
	if err := profiles.Put(ctx, profile); err != nil {
		log.Fatalf("profile write error: %v", err)
	}

	if *sellerID != "" {
		code := *sellerCode
		if code == "" {
			code = *sellerID
		}
		seller := entities.Seller{ID: *sellerID, Code: code, Name: *name, Email: normalized}
		if err := sellers.Put(ctx, seller); err != nil {
			log.Fatalf("seller write error: %v", err)
		}
	}

	fmt.Printf("user %s (%s) saved with role %s\n", normalized, id, profile.Role)
}
