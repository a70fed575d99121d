// Package types holds the request and response bodies of the HTTP API.
// The admin package serves them and API clients decode them.
package types

import (
	"time"

	"github.com/praskarnam/DSynth/pkg/generator"
	"github.com/praskarnam/DSynth/pkg/schema"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// HealthResponse is a simple health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version,omitempty"`
	Uptime    int       `json:"uptime,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// MessageResponse is a simple message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreatedResponse answers a create call with the new ID.
type CreatedResponse struct {
	Message  string   `json:"message"`
	ID       string   `json:"id"`
	Warnings []string `json:"warnings,omitempty"`
}

// ElementsResponse lists the elements parsed from a schema's content.
type ElementsResponse struct {
	Elements []schema.Element `json:"elements"`
}

// SampleSchemaResponse carries starter content for a schema type.
type SampleSchemaResponse struct {
	SchemaType    string `json:"schemaType"`
	SchemaContent string `json:"schemaContent"`
}

// GenerateRequest is the body of POST /api/schemas/{id}/generate.
type GenerateRequest struct {
	Count int    `json:"count"`
	Seed  *int64 `json:"seed,omitempty"`
}

// GenerateResponse carries a generated batch.
type GenerateResponse struct {
	Data  []generator.Record `json:"data"`
	Count int                `json:"count"`
	Seed  *int64             `json:"seed,omitempty"`
}

// PageResponse is one page of a schema's seedCount-record batch.
type PageResponse struct {
	Data       []generator.Record `json:"data"`
	Page       int                `json:"page"`
	Size       int                `json:"size"`
	Total      int                `json:"total"`
	TotalPages int                `json:"total_pages"`
	HasNext    bool               `json:"has_next"`
	HasPrev    bool               `json:"has_prev"`
}

// NewPageResponse computes the pagination fields for page of size over
// total records.
func NewPageResponse(data []generator.Record, page, size, total int) PageResponse {
	if data == nil {
		data = []generator.Record{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = (total + size - 1) / size
	}
	return PageResponse{
		Data:       data,
		Page:       page,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// TestResultResponse reports a custom type self-test.
type TestResultResponse struct {
	Success    bool   `json:"success"`
	SampleData any    `json:"sample_data,omitempty"`
	Error      string `json:"error,omitempty"`
}

// CountResponse is a response with a count field.
type CountResponse struct {
	Message string `json:"message,omitempty"`
	Count   int    `json:"count"`
}
