// Command tokengen issues a signed member token for local development.
//
//	JWT_SECRET=... tokengen -member M1 -name Aki -ttl 1h
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/circleledger/internal/auth"
	"github.com/mmynk/circleledger/internal/config"
	"github.com/mmynk/circleledger/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	logging.SetupWithLevel(slog.LevelWarn)

	memberID := flag.String("member", "", "member id to issue the token for (required)")
	name := flag.String("name", "", "display name claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	secret := flag.String("secret", os.Getenv("JWT_SECRET"), "signing secret (default $JWT_SECRET)")
	flag.Parse()

	if *memberID == "" {
		flag.Usage()
		os.Exit(2)
	}
	if len(*secret) < config.MinSecretLength {
		slog.Error("Signing secret too short", "min_bytes", config.MinSecretLength)
		os.Exit(1)
	}

	token, err := auth.NewJWTManager(*secret, *ttl).Generate(*memberID, *name)
	if err != nil {
		slog.Error("Failed to generate token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
