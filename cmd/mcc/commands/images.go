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

// NewImagesCommand creates the images command group
func NewImagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "images",
		Aliases: []string{"image"},
		Short:   "Manage images",
		Long:    "List and manage bootable machine images",
	}

	cmd.AddCommand(newImagesListCommand())
	cmd.AddCommand(newImagesGetCommand())
	cmd.AddCommand(newImagesDeleteCommand())

	return cmd
}

func newImagesListCommand() *cobra.Command {
	var (
		allPages bool
		detail   bool
		limit    int
		marker   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List images",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			params := listParams(limit, marker)

			path := "/v2/images"
			if detail {
				path = "/v2/images/detail"
			}

			var images []compute.Image

			if allPages {
				images, err = compute.FetchAllPages[compute.Image](ctx, client.Images(), path, params, nil)
			} else {
				var page *compute.ImageList

				page, err = client.Images().ListWithPath(ctx, path, params)
				if page != nil {
					images = page.Resources
				}
			}

			if err != nil {
				return fmt.Errorf("failed to list images: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(images)
			case OutputFormatYAML:
				return renderYAML(images)
			default:
				if len(images) == 0 {
					fmt.Println("No images found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Status", "Min Disk", "Min RAM", "Created")

				for _, image := range images {
					_ = table.Append(image.ID, image.Name, image.Status,
						strconv.Itoa(image.MinDisk), strconv.Itoa(image.MinRAM),
						formatTime(image.Created))
				}

				_ = table.Render()
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().BoolVar(&detail, "detail", false, "include full image details")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results per page")
	cmd.Flags().StringVar(&marker, "marker", "", "start listing after this image ID")

	return cmd
}

func newImagesGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get IMAGE_ID",
		Short: "Get image details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			image, err := client.Images().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get image: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(image)
			case OutputFormatYAML:
				return renderYAML(image)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Field", "Value")
				_ = table.Append("ID", image.ID)
				_ = table.Append("Name", image.Name)
				_ = table.Append("Status", image.Status)
				_ = table.Append("Min Disk (GB)", strconv.Itoa(image.MinDisk))
				_ = table.Append("Min RAM (MB)", strconv.Itoa(image.MinRAM))
				_ = table.Append("Size (bytes)", strconv.FormatInt(image.Size, 10))
				_ = table.Append("Created", formatTime(image.Created))
				_ = table.Render()
			}

			return nil
		},
	}

	return cmd
}

func newImagesDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete IMAGE_ID",
		Short: "Delete an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			if err := client.Images().Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete image: %w", err)
			}

			fmt.Printf("Image %s deleted\n", args[0])

			return nil
		},
	}

	return cmd
}
