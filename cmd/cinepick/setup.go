package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/cinepick/internal/adapter"
	"github.com/mmcdole/cinepick/internal/domain"
	"github.com/mmcdole/cinepick/internal/metadata/tmdb"
)

const verifyTimeout = 10 * time.Second

func setupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Store your TMDb API key and user name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := adapter.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return runSetupFlow(cmd.Context(), cfg)
		},
	}
}

// runSetupFlow prompts for credentials until the API key is accepted
func runSetupFlow(ctx context.Context, cfg *adapter.Config) error {
	fmt.Println()
	fmt.Println("Welcome to cinepick!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("Your name [%s]: ", cfg.User.Name)
	name, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}
	if name = strings.TrimSpace(name); name != "" {
		cfg.User.Name = name
	}

	for {
		// Prompt for the key (hidden input)
		fmt.Print("TMDb API key: ")
		keyBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
		key := strings.TrimSpace(string(keyBytes))
		if key == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		fmt.Println("Checking key...")
		if err := verifyKey(ctx, cfg.TMDB, key); err != nil {
			if errors.Is(err, domain.ErrAuthFailed) {
				fmt.Println("✗ The key was rejected. Please try again.")
				continue
			}
			return err
		}
		cfg.TMDB.APIKey = key
		break
	}

	if err := adapter.SaveConfig(cfg); err != nil {
		return err
	}
	fmt.Println("✓ Saved. Try 'cinepick today'.")
	return nil
}

func verifyKey(ctx context.Context, cfg adapter.TMDBConfig, key string) error {
	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()

	client := tmdb.NewClient(tmdb.ClientConfig{
		BaseURL:  cfg.BaseURL,
		APIKey:   key,
		Language: cfg.Language,
		Timeout:  cfg.Timeout,
	}, adapter.NullLogger())
	if _, err := client.GetListing(ctx, "/configuration", nil); err != nil {
		return fmt.Errorf("failed to verify API key: %w", err)
	}
	return nil
}
