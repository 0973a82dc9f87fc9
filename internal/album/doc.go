// Package album provides an HTTP client for the photo album server API.
//
// # Overview
//
// This package defines the API client for communicating with the album
// server: gallery paging, text/image/face search, batch mutations, feature
// settings, and the batch background jobs (enhance, CLIP embedding, face
// detection, face clustering). It handles HTTP communication, JSON and
// multipart serialization, and type-safe representation of the server's
// payloads. JSON field names mirror the server schema exactly.
//
// # Architecture
//
// The package is split into two files:
//
//   - client.go: HTTP client implementation and request/response handling
//   - types.go: Data structures mirroring the album server API schema
//
// # Client Usage
//
// Create a client using the server address from configuration:
//
//	client, err := album.NewClient("127.0.0.1:8000")
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	// Fetch one gallery page
//	page, err := client.Images(ctx, 1, 40)
//	if err != nil {
//		log.Printf("gallery fetch failed: %v", err)
//	}
//
//	// Free-text search
//	res, err := client.SearchImages(ctx, "sunset over water", 200)
//	if err != nil {
//		log.Printf("search failed: %v", err)
//	}
//
// # Error Handling
//
// The server embeds application failures in otherwise-2xx bodies as an
// "error" field. The client surfaces those as *APIError so callers can
// distinguish them from transport failures and from context cancellation.
// All methods accept a context and return promptly when it is cancelled.
//
// # Service Interface
//
// The Service interface abstracts the client so the controller package can
// be tested against an in-memory fake without a running server.
package album
