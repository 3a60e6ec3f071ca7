package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/stemsi/teachpay-backend/internal/config"
	"github.com/stemsi/teachpay-backend/internal/database"
	"github.com/stemsi/teachpay-backend/internal/logger"
	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/repository"
	"github.com/stemsi/teachpay-backend/internal/service"
)

func main() {
	var role string
	flag.StringVar(&role, "role", string(model.RoleAdmin), "ADMIN, FACULTY_MANAGER or ACCOUNTANT")
	flag.Parse()

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	r := model.Role(strings.ToUpper(role))
	if !r.Valid() || r == model.RoleTeacher {
		// Teacher accounts are created together with their teacher record.
		log.Fatal().Str("role", role).Msg("role must be ADMIN, FACULTY_MANAGER or ACCOUNTANT")
	}

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Initialize Service ────────────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	authService := service.NewAuthService(cfg, nil, userRepo, log)
	userService := service.NewUserService(userRepo, authService, log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("=== Create New %s Account ===\n", r)

	fmt.Print("Enter Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" {
		fmt.Println("Error: Username is required")
		return
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	user, err := userService.Create(ctx, model.CreateUserRequest{
		Username: username,
		Password: password,
		Role:     r,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create user")
	}

	fmt.Printf("\nSuccess! %s '%s' created with ID: %s\n", user.Role, user.Username, user.ID)
}
