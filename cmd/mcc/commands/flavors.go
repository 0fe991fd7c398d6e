package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meridian-cloud/compute-client/pkg/compute"
)

// NewFlavorsCommand creates the flavors command group
func NewFlavorsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "flavors",
		Aliases: []string{"flavor"},
		Short:   "Manage flavors",
		Long:    "List and manage hardware configurations for servers",
	}

	cmd.AddCommand(newFlavorsListCommand())
	cmd.AddCommand(newFlavorsGetCommand())
	cmd.AddCommand(newFlavorsCreateCommand())
	cmd.AddCommand(newFlavorsDeleteCommand())

	return cmd
}

func newFlavorsListCommand() *cobra.Command {
	var (
		allPages bool
		detail   bool
		limit    int
		marker   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List flavors",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			params := listParams(limit, marker)

			path := "/v2/flavors"
			if detail {
				path = "/v2/flavors/detail"
			}

			var flavors []compute.Flavor

			if allPages {
				flavors, err = compute.FetchAllPages[compute.Flavor](ctx, client.Flavors(), path, params, nil)
			} else {
				var page *compute.FlavorList

				page, err = client.Flavors().ListWithPath(ctx, path, params)
				if page != nil {
					flavors = page.Resources
				}
			}

			if err != nil {
				return fmt.Errorf("failed to list flavors: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(flavors)
			case OutputFormatYAML:
				return renderYAML(flavors)
			default:
				if len(flavors) == 0 {
					fmt.Println("No flavors found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "VCPUs", "RAM (MB)", "Disk (GB)", "Public")

				for _, flavor := range flavors {
					public := NotAvailable
					if flavor.IsPublic != nil {
						public = strconv.FormatBool(*flavor.IsPublic)
					}

					_ = table.Append(flavor.ID, flavor.Name,
						strconv.Itoa(flavor.VCPUs), strconv.Itoa(flavor.RAM),
						strconv.Itoa(flavor.Disk), public)
				}

				_ = table.Render()
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().BoolVar(&detail, "detail", false, "include full flavor details")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results per page")
	cmd.Flags().StringVar(&marker, "marker", "", "start listing after this flavor ID")

	return cmd
}

func newFlavorsGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get FLAVOR_ID",
		Short: "Get flavor details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			flavor, err := client.Flavors().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get flavor: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(flavor)
			case OutputFormatYAML:
				return renderYAML(flavor)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Field", "Value")
				_ = table.Append("ID", flavor.ID)
				_ = table.Append("Name", flavor.Name)
				_ = table.Append("VCPUs", strconv.Itoa(flavor.VCPUs))
				_ = table.Append("RAM (MB)", strconv.Itoa(flavor.RAM))
				_ = table.Append("Disk (GB)", strconv.Itoa(flavor.Disk))
				_ = table.Append("Ephemeral (GB)", strconv.Itoa(flavor.Ephemeral))
				_ = table.Append("Swap (MB)", strconv.Itoa(flavor.Swap))
				_ = table.Render()
			}

			return nil
		},
	}

	return cmd
}

func newFlavorsCreateCommand() *cobra.Command {
	var (
		vcpus int
		ram   int
		disk  int
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a flavor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			request := &compute.FlavorCreateRequest{
				Name:  args[0],
				VCPUs: vcpus,
				RAM:   ram,
				Disk:  disk,
			}

			flavor, err := client.Flavors().Create(ctx, request)
			if err != nil {
				return fmt.Errorf("failed to create flavor: %w", err)
			}

			fmt.Printf("Flavor '%s' created (ID: %s)\n", flavor.Name, flavor.ID)

			return nil
		},
	}

	cmd.Flags().IntVar(&vcpus, "vcpus", 1, "number of virtual CPUs")
	cmd.Flags().IntVar(&ram, "ram", 512, "memory in MB")
	cmd.Flags().IntVar(&disk, "disk", 1, "root disk in GB")

	return cmd
}

func newFlavorsDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete FLAVOR_ID",
		Short: "Delete a flavor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			if err := client.Flavors().Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete flavor: %w", err)
			}

			fmt.Printf("Flavor %s deleted\n", args[0])

			return nil
		},
	}

	return cmd
}
