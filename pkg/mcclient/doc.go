// Package mcclient provides the primary entry point for constructing a
// Meridian compute API client that implements the compute.Client interface.
//
// It layers configuration, HTTP transport, and authentication on top of the
// resource interfaces and types defined in the compute package. Most
// applications should import mcclient to build a client, then use the
// returned compute.Client to access resource-specific clients, for example
// Servers(), Flavors(), Images(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/meridian-cloud/compute-client/pkg/compute"
//	  "github.com/meridian-cloud/compute-client/pkg/mcclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: just an API endpoint (no auth).
//	  cli, err := mcclient.New(ctx, &compute.Config{APIEndpoint: "https://compute.example.com"})
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with a token you already have:
//	  cli, err = mcclient.New(ctx, &compute.Config{
//	    APIEndpoint: "https://compute.example.com",
//	    Token:       "gAAAAAB...",
//	  })
//
//	  // Or with username/password. When credentials are provided and no
//	  // token URL is set, mcclient derives it from the API endpoint.
//	  cli, err = mcclient.New(ctx, &compute.Config{
//	    APIEndpoint: "https://compute.example.com",
//	    Username:    "user",
//	    Password:    "pass",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Use resource clients via the compute.Client interface
//	  servers, err := cli.Servers().List(ctx, compute.NewQueryParams().WithLimit(10))
//	  if err != nil { log.Fatal(err) }
//	  _ = servers
//	}
//
// # Helpers
//
// The package also provides convenience constructors NewWithEndpoint,
// NewWithToken, and NewWithPassword that wrap New with the appropriate
// configuration.
package mcclient
