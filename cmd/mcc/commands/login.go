package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/meridian-cloud/compute-client/pkg/compute"
	"github.com/meridian-cloud/compute-client/pkg/mcclient"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		apiEndpoint string
		username    string
		password    string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to Meridian compute",
		Long:  "Authenticate with a Meridian compute API endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiEndpoint == "" {
				apiEndpoint = viper.GetString("api")
			}

			if apiEndpoint == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("API endpoint: ")
				apiEndpoint, _ = reader.ReadString('\n')
				apiEndpoint = strings.TrimSpace(apiEndpoint)
			}

			if apiEndpoint == "" {
				return ErrAPIEndpointRequired
			}

			if username == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Username: ")
				username, _ = reader.ReadString('\n')
				username = strings.TrimSpace(username)
			}

			if username == "" {
				return ErrUsernameRequired
			}

			if password == "" {
				fmt.Print("Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))

				fmt.Println()

				if err != nil {
					return fmt.Errorf("reading password: %w", err)
				}

				password = string(bytePassword)
			}

			ctx := context.Background()

			client, err := mcclient.New(ctx, &compute.Config{
				APIEndpoint: apiEndpoint,
				Username:    username,
				Password:    password,
			})
			if err != nil {
				return fmt.Errorf("creating client: %w", err)
			}

			// Verify the credentials before declaring success
			if _, err := client.Limits().Get(ctx); err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			viper.Set("api", apiEndpoint)
			viper.Set("username", username)
			viper.Set("password", password)

			if err := viper.WriteConfig(); err != nil {
				if err := viper.SafeWriteConfig(); err != nil {
					return fmt.Errorf("saving config: %w", err)
				}
			}

			fmt.Printf("Logged in to %s as %s\n", apiEndpoint, username)

			return nil
		},
	}

	cmd.Flags().StringVarP(&apiEndpoint, "api", "a", "", "API endpoint URL")
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted if not given)")

	return cmd
}
