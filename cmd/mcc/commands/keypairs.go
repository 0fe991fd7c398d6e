package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meridian-cloud/compute-client/pkg/compute"
)

// NewKeypairsCommand creates the keypairs command group
func NewKeypairsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keypairs",
		Aliases: []string{"keypair"},
		Short:   "Manage keypairs",
		Long:    "List, create, and delete SSH keypairs",
	}

	cmd.AddCommand(newKeypairsListCommand())
	cmd.AddCommand(newKeypairsGetCommand())
	cmd.AddCommand(newKeypairsCreateCommand())
	cmd.AddCommand(newKeypairsDeleteCommand())

	return cmd
}

func newKeypairsListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List keypairs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			keypairs, err := client.Keypairs().List(ctx, nil)
			if err != nil {
				return fmt.Errorf("failed to list keypairs: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(keypairs.Resources)
			case OutputFormatYAML:
				return renderYAML(keypairs.Resources)
			default:
				if len(keypairs.Resources) == 0 {
					fmt.Println("No keypairs found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "Type", "Fingerprint")

				for _, keypair := range keypairs.Resources {
					_ = table.Append(keypair.Name, keypair.Type, keypair.Fingerprint)
				}

				_ = table.Render()
			}

			return nil
		},
	}

	return cmd
}

func newKeypairsGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Get keypair details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			keypair, err := client.Keypairs().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get keypair: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(keypair)
			case OutputFormatYAML:
				return renderYAML(keypair)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Field", "Value")
				_ = table.Append("Name", keypair.Name)
				_ = table.Append("Type", keypair.Type)
				_ = table.Append("Fingerprint", keypair.Fingerprint)
				_ = table.Append("Public Key", keypair.PublicKey)
				_ = table.Render()
			}

			return nil
		},
	}

	return cmd
}

func newKeypairsCreateCommand() *cobra.Command {
	var publicKeyFile string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create or import a keypair",
		Long: `Create a new keypair. With --public-key-file the given key is
imported; otherwise the provider generates one and the private key is
printed exactly once.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			request := &compute.KeypairCreateRequest{
				Name: args[0],
			}

			if publicKeyFile != "" {
				publicKey, err := os.ReadFile(publicKeyFile)
				if err != nil {
					return fmt.Errorf("%w: %s", ErrPublicKeyFileMissing, publicKeyFile)
				}

				request.PublicKey = string(publicKey)
			}

			keypair, err := client.Keypairs().Create(ctx, request)
			if err != nil {
				return fmt.Errorf("failed to create keypair: %w", err)
			}

			fmt.Printf("Keypair '%s' created (fingerprint: %s)\n", keypair.Name, keypair.Fingerprint)

			// The private key is not retrievable later
			if keypair.PrivateKey != "" {
				fmt.Println()
				fmt.Println(keypair.PrivateKey)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&publicKeyFile, "public-key-file", "", "path to an existing public key to import")

	return cmd
}

func newKeypairsDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a keypair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			if err := client.Keypairs().Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete keypair: %w", err)
			}

			fmt.Printf("Keypair %s deleted\n", args[0])

			return nil
		},
	}

	return cmd
}
