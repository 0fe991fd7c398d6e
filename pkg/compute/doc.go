// Package compute provides types, interfaces, and helpers for working with
// the Meridian Compute API.
//
// # Overview
//
// The compute package defines the domain types (Server, Flavor, Image,
// Keypair, Limits, Hypervisor) and the interfaces for resource-oriented
// clients (ServersClient, FlavorsClient, and so on). A concrete
// implementation of these clients is provided by the mcclient package,
// which wires configuration, transport, and authentication. Most consumers
// should import mcclient to construct a client and then interact with the
// resource client interfaces exposed here.
//
// Getting a client
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
//	  cli, err := mcclient.New(ctx, &compute.Config{APIEndpoint: "https://compute.example.com"})
//	  if err != nil { log.Fatal(err) }
//
//	  // List the first page of servers
//	  servers, err := cli.Servers().List(ctx, compute.NewQueryParams().WithLimit(50))
//	  if err != nil { log.Fatal(err) }
//	  _ = servers
//	}
//
// # Queries and pagination
//
// Use QueryParams to express common list options (limit, marker, sort,
// filters). Listed collections are paginated with rel-tagged links; the
// package provides lazy helpers that follow a page's "next" link until the
// collection is exhausted, issuing one request per page:
//
//	it := compute.NewPaginationIterator[compute.Server](ctx, cli.Servers(), "/v2/servers", nil)
//	for it.HasNext() {
//	  server, err := it.Next()
//	  if err != nil { break }
//	  _ = server
//	}
//
// or fetch all results at once:
//
//	all, err := compute.FetchAllPages[compute.Server](ctx, cli.Servers(), "/v2/servers", nil, nil)
//	if err != nil { /* handle error */ }
//	_ = all
//
// # Errors
//
// API errors are represented by APIError and ResponseError, which carry
// the HTTP status and the provider's parsed error body. Helpers such as
// IsNotFound, IsUnauthorized, and IsForbidden make it easy to branch on
// common cases. Nothing is retried at this layer; transport-level retry
// policy is configured on Config and applies only to transient failures.
//
// # Interceptors and caching
//
// The package includes generic building blocks such as request/response
// interceptors (logging, user agent, rate limiting) and a pluggable Cache
// abstraction with memory and NATS KV backends. Caching is opt-in and
// applies to detail GETs only; list pages are never cached, so every
// enumeration starts from fresh provider state.
package compute
