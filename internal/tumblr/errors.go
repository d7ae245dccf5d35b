// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tumblr

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the Tumblr API.
type APIError struct {
	Status  int
	Message string
	Details []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %d %s", e.Status, e.Message)
}

// Detail joins the per-error details reported by the API.
func (e *APIError) Detail() string { return strings.Join(e.Details, "; ") }

// StatusCode returns the HTTP status of the failed response.
func (e *APIError) StatusCode() int { return e.Status }

type errorEnvelope struct {
	Meta struct {
		Status int    `json:"status"`
		Msg    string `json:"msg"`
	} `json:"meta"`
	Errors []struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// newAPIError builds an APIError from a response status and body.
// Bodies that are not the standard envelope fall back to the HTTP status text.
func newAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status, Message: http.StatusText(status)}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return e
	}
	if env.Meta.Msg != "" {
		e.Message = env.Meta.Msg
	}
	for _, item := range env.Errors {
		switch {
		case item.Detail != "":
			e.Details = append(e.Details, item.Detail)
		case item.Title != "":
			e.Details = append(e.Details, item.Title)
		}
	}
	return e
}
