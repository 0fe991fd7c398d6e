package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meridian-cloud/compute-client/pkg/compute"
)

// NewServersCommand creates the servers command group
func NewServersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "servers",
		Aliases: []string{"server"},
		Short:   "Manage servers",
		Long:    "List, create, and manage compute servers",
	}

	cmd.AddCommand(newServersListCommand())
	cmd.AddCommand(newServersGetCommand())
	cmd.AddCommand(newServersCreateCommand())
	cmd.AddCommand(newServersDeleteCommand())
	cmd.AddCommand(newServersStartCommand())
	cmd.AddCommand(newServersStopCommand())
	cmd.AddCommand(newServersRebootCommand())
	cmd.AddCommand(newServersResizeCommand())
	cmd.AddCommand(newServersRebuildCommand())

	return cmd
}

func newServersListCommand() *cobra.Command {
	var (
		allPages bool
		limit    int
		marker   string
		status   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List servers",
		Long:  "List all servers the user has access to",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			params := listParams(limit, marker)
			if status != "" {
				params.WithFilter("status", status)
			}

			var servers []compute.Server

			if allPages {
				servers, err = compute.FetchAllPages[compute.Server](ctx, client.Servers(), "/v2/servers", params, nil)
			} else {
				var page *compute.ServerList

				page, err = client.Servers().List(ctx, params)
				if page != nil {
					servers = page.Resources
				}
			}

			if err != nil {
				return fmt.Errorf("failed to list servers: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(servers)
			case OutputFormatYAML:
				return renderYAML(servers)
			default:
				if len(servers) == 0 {
					fmt.Println("No servers found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Status", "Flavor", "Image", "Addresses", "Created")

				for _, server := range servers {
					flavorID := ""
					if server.Flavor != nil {
						flavorID = server.Flavor.ID
					}

					imageID := ""
					if server.Image != nil {
						imageID = server.Image.ID
					}

					_ = table.Append(server.ID, server.Name, server.Status, flavorID, imageID,
						formatAddresses(server.Addresses), formatTime(server.Created))
				}

				_ = table.Render()
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results per page")
	cmd.Flags().StringVar(&marker, "marker", "", "start listing after this server ID")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")

	return cmd
}

func newServersGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get SERVER_ID",
		Short: "Get server details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			server, err := client.Servers().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get server: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(server)
			case OutputFormatYAML:
				return renderYAML(server)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Field", "Value")
				_ = table.Append("ID", server.ID)
				_ = table.Append("Name", server.Name)
				_ = table.Append("Status", server.Status)
				_ = table.Append("Key Name", server.KeyName)
				_ = table.Append("Availability Zone", server.AvailabilityZone)
				_ = table.Append("Addresses", formatAddresses(server.Addresses))
				_ = table.Append("Created", formatTime(server.Created))
				_ = table.Append("Updated", formatTime(server.Updated))

				if server.Fault != nil {
					_ = table.Append("Fault", server.Fault.Message)
				}

				_ = table.Render()
			}

			return nil
		},
	}

	return cmd
}

func newServersCreateCommand() *cobra.Command {
	var (
		flavorRef string
		imageRef  string
		keyName   string
		zone      string
		networks  []string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flavorRef == "" {
				return ErrFlavorRequired
			}

			if imageRef == "" {
				return ErrImageRequired
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			request := &compute.ServerCreateRequest{
				Name:             args[0],
				FlavorRef:        flavorRef,
				ImageRef:         imageRef,
				KeyName:          keyName,
				AvailabilityZone: zone,
			}

			for _, network := range networks {
				request.Networks = append(request.Networks, compute.ServerNetwork{UUID: network})
			}

			server, err := client.Servers().Create(ctx, request)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			fmt.Printf("Server '%s' created (ID: %s, status: %s)\n", server.Name, server.ID, server.Status)

			return nil
		},
	}

	cmd.Flags().StringVar(&flavorRef, "flavor", "", "flavor ID (required)")
	cmd.Flags().StringVar(&imageRef, "image", "", "image ID (required)")
	cmd.Flags().StringVar(&keyName, "key-name", "", "keypair name for SSH access")
	cmd.Flags().StringVar(&zone, "availability-zone", "", "availability zone")
	cmd.Flags().StringSliceVar(&networks, "network", nil, "network UUID (repeatable)")

	return cmd
}

func newServersDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete SERVER_ID",
		Short: "Delete a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			if err := client.Servers().Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete server: %w", err)
			}

			fmt.Printf("Server %s deleted\n", args[0])

			return nil
		},
	}

	return cmd
}

func newServersStartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start SERVER_ID",
		Short: "Start a stopped server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			if err := client.Servers().Start(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}

			fmt.Printf("Server %s starting\n", args[0])

			return nil
		},
	}

	return cmd
}

func newServersStopCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop SERVER_ID",
		Short: "Stop a running server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			if err := client.Servers().Stop(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to stop server: %w", err)
			}

			fmt.Printf("Server %s stopping\n", args[0])

			return nil
		},
	}

	return cmd
}

func newServersRebootCommand() *cobra.Command {
	var hard bool

	cmd := &cobra.Command{
		Use:   "reboot SERVER_ID",
		Short: "Reboot a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			rebootType := compute.RebootSoft
			if hard {
				rebootType = compute.RebootHard
			}

			if err := client.Servers().Reboot(ctx, args[0], rebootType); err != nil {
				return fmt.Errorf("failed to reboot server: %w", err)
			}

			fmt.Printf("Server %s rebooting (%s)\n", args[0], strings.ToLower(rebootType))

			return nil
		},
	}

	cmd.Flags().BoolVar(&hard, "hard", false, "perform a hard reboot")

	return cmd
}

func newServersResizeCommand() *cobra.Command {
	var flavorRef string

	cmd := &cobra.Command{
		Use:   "resize SERVER_ID",
		Short: "Resize a server to a new flavor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flavorRef == "" {
				return ErrFlavorRequired
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			if err := client.Servers().Resize(ctx, args[0], flavorRef); err != nil {
				return fmt.Errorf("failed to resize server: %w", err)
			}

			fmt.Printf("Server %s resizing to flavor %s\n", args[0], flavorRef)

			return nil
		},
	}

	cmd.Flags().StringVar(&flavorRef, "flavor", "", "target flavor ID (required)")

	return cmd
}

func newServersRebuildCommand() *cobra.Command {
	var (
		imageRef string
		name     string
	)

	cmd := &cobra.Command{
		Use:   "rebuild SERVER_ID",
		Short: "Rebuild a server from an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if imageRef == "" {
				return ErrImageRequired
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			request := &compute.ServerRebuildRequest{
				ImageRef: imageRef,
				Name:     name,
			}

			server, err := client.Servers().Rebuild(ctx, args[0], request)
			if err != nil {
				return fmt.Errorf("failed to rebuild server: %w", err)
			}

			fmt.Printf("Server %s rebuilding (status: %s)\n", server.ID, server.Status)

			return nil
		},
	}

	cmd.Flags().StringVar(&imageRef, "image", "", "source image ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "new server name")

	return cmd
}

// formatAddresses flattens a server's addresses into one display string.
func formatAddresses(addresses map[string][]compute.Address) string {
	if len(addresses) == 0 {
		return ""
	}

	var parts []string
	for network, addrs := range addresses {
		for _, addr := range addrs {
			parts = append(parts, fmt.Sprintf("%s=%s", network, addr.Addr))
		}
	}

	return strings.Join(parts, ", ")
}
