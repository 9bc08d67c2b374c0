// Package models defines the wire contract and persistent entities for the local generation backend.
//
// The package contains two categories of types:
//
// 1. Wire types: JSON bodies exchanged with the generation endpoint
//   - [GenerateRequest] : Photo payload with filter and model parameters
//   - [GenerateResponse] : Resulting video location and the model that produced it
//   - [ErrorResponse] : Error body with a human-readable detail message
//   - [HealthResponse] : Liveness probe body
//
// 2. Persistent entities: Database-backed records with full lifecycle management
//   - [GenerationJob] : One accepted generation request, tracking its output video
//
// Persistent entities implement the [Model] interface providing ID generation, timestamps, and validation.
// The [Repository] interface defines standard CRUD operations for database access.
package models
