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

// NewHypervisorsCommand creates the hypervisors command group
func NewHypervisorsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hypervisors",
		Aliases: []string{"hypervisor"},
		Short:   "Inspect hypervisors",
		Long:    "List compute hosts and their usage",
	}

	cmd.AddCommand(newHypervisorsListCommand())
	cmd.AddCommand(newHypervisorsGetCommand())
	cmd.AddCommand(newHypervisorsStatsCommand())

	return cmd
}

func newHypervisorsListCommand() *cobra.Command {
	var detail bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List hypervisors",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			var hypervisors *compute.HypervisorList

			if detail {
				hypervisors, err = client.Hypervisors().ListDetail(ctx, nil)
			} else {
				hypervisors, err = client.Hypervisors().List(ctx, nil)
			}

			if err != nil {
				return fmt.Errorf("failed to list hypervisors: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(hypervisors.Resources)
			case OutputFormatYAML:
				return renderYAML(hypervisors.Resources)
			default:
				if len(hypervisors.Resources) == 0 {
					fmt.Println("No hypervisors found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Hostname", "State", "Status", "VMs", "VCPUs Used")

				for _, hypervisor := range hypervisors.Resources {
					_ = table.Append(hypervisor.ID, hypervisor.Hostname,
						hypervisor.State, hypervisor.Status,
						strconv.Itoa(hypervisor.RunningVMs),
						fmt.Sprintf("%d/%d", hypervisor.VCPUsUsed, hypervisor.VCPUs))
				}

				_ = table.Render()
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&detail, "detail", false, "include full hypervisor details")

	return cmd
}

func newHypervisorsGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get HYPERVISOR_ID",
		Short: "Get hypervisor details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			hypervisor, err := client.Hypervisors().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get hypervisor: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(hypervisor)
			case OutputFormatYAML:
				return renderYAML(hypervisor)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Field", "Value")
				_ = table.Append("ID", hypervisor.ID)
				_ = table.Append("Hostname", hypervisor.Hostname)
				_ = table.Append("Type", hypervisor.HypervisorType)
				_ = table.Append("State", hypervisor.State)
				_ = table.Append("Status", hypervisor.Status)
				_ = table.Append("Host IP", hypervisor.HostIP)
				_ = table.Append("VCPUs", fmt.Sprintf("%d/%d", hypervisor.VCPUsUsed, hypervisor.VCPUs))
				_ = table.Append("Memory (MB)", fmt.Sprintf("%d/%d", hypervisor.MemoryMBUsed, hypervisor.MemoryMB))
				_ = table.Append("Disk (GB)", fmt.Sprintf("%d/%d", hypervisor.LocalGBUsed, hypervisor.LocalGB))
				_ = table.Append("Running VMs", strconv.Itoa(hypervisor.RunningVMs))
				_ = table.Render()
			}

			return nil
		},
	}

	return cmd
}

func newHypervisorsStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate hypervisor statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			stats, err := client.Hypervisors().Statistics(ctx)
			if err != nil {
				return fmt.Errorf("failed to get hypervisor statistics: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(stats)
			case OutputFormatYAML:
				return renderYAML(stats)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Field", "Value")
				_ = table.Append("Hypervisors", strconv.Itoa(stats.Count))
				_ = table.Append("VCPUs", fmt.Sprintf("%d/%d", stats.VCPUsUsed, stats.VCPUs))
				_ = table.Append("Memory (MB)", fmt.Sprintf("%d/%d", stats.MemoryMBUsed, stats.MemoryMB))
				_ = table.Append("Disk (GB)", fmt.Sprintf("%d/%d", stats.LocalGBUsed, stats.LocalGB))
				_ = table.Append("Running VMs", strconv.Itoa(stats.RunningVMs))
				_ = table.Render()
			}

			return nil
		},
	}

	return cmd
}
