// Package commands implements the mcc CLI commands.
package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/meridian-cloud/compute-client/pkg/compute"
	"github.com/meridian-cloud/compute-client/pkg/mcclient"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	timeFormat = "2006-01-02 15:04:05"
)

// Common static errors used throughout the commands package.
var (
	ErrAPIEndpointRequired  = errors.New("API endpoint is required")
	ErrServerNotFound       = errors.New("server not found")
	ErrFlavorNotFound       = errors.New("flavor not found")
	ErrImageNotFound        = errors.New("image not found")
	ErrKeypairNotFound      = errors.New("keypair not found")
	ErrNameRequired         = errors.New("name is required")
	ErrFlavorRequired       = errors.New("flavor is required (use --flavor)")
	ErrImageRequired        = errors.New("image is required (use --image)")
	ErrUsernameRequired     = errors.New("username is required")
	ErrPublicKeyFileMissing = errors.New("public key file not found")
)

// createClient builds a compute client from the effective CLI configuration.
func createClient(ctx context.Context) (compute.Client, error) {
	endpoint := viper.GetString("api")
	if endpoint == "" {
		return nil, ErrAPIEndpointRequired
	}

	config := &compute.Config{
		APIEndpoint: endpoint,
		Token:       viper.GetString("token"),
		Username:    viper.GetString("username"),
		Password:    viper.GetString("password"),
		Debug:       viper.GetBool("verbose"),
	}

	client, err := mcclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// renderJSON writes data to stdout as indented JSON.
func renderJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}

	return nil
}

// renderYAML writes data to stdout as YAML.
func renderYAML(data interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer func() { _ = encoder.Close() }()

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}

	return nil
}

// formatTime renders a timestamp for table output.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(timeFormat)
}

// listParams builds QueryParams from the common list flags.
func listParams(limit int, marker string) *compute.QueryParams {
	params := compute.NewQueryParams()

	if limit > 0 {
		params.WithLimit(limit)
	}

	if marker != "" {
		params.WithMarker(marker)
	}

	return params
}
