package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewLimitsCommand creates the limits command
func NewLimitsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "limits",
		Short: "Show tenant limits",
		Long:  "Show the tenant's quota ceilings, current usage, and rate limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			limits, err := client.Limits().Get(ctx)
			if err != nil {
				return fmt.Errorf("failed to get limits: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(limits)
			case OutputFormatYAML:
				return renderYAML(limits)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Limit", "Used", "Max")

				absolute := limits.Absolute
				_ = table.Append("Instances",
					strconv.Itoa(absolute.TotalInstancesUsed), strconv.Itoa(absolute.MaxTotalInstances))
				_ = table.Append("Cores",
					strconv.Itoa(absolute.TotalCoresUsed), strconv.Itoa(absolute.MaxTotalCores))
				_ = table.Append("RAM (MB)",
					strconv.Itoa(absolute.TotalRAMUsed), strconv.Itoa(absolute.MaxTotalRAMSize))
				_ = table.Append("Keypairs",
					NotAvailable, strconv.Itoa(absolute.MaxTotalKeypairs))
				_ = table.Append("Security Groups",
					strconv.Itoa(absolute.TotalSecurityGroups), strconv.Itoa(absolute.MaxSecurityGroups))

				_ = table.Render()
			}

			return nil
		},
	}

	return cmd
}
