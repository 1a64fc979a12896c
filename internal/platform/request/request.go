// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/taibuivan/circa/internal/platform/validate"
)

// maxBodyBytes caps request bodies to keep hostile payloads out of the decoder.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	body := http.MaxBytesReader(nil, request.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ReadBody reads the raw request body, capped at maxBodyBytes.

Used by endpoints that forward the payload to another parser (e.g. the
structured search query language) instead of decoding into a struct.
*/
func ReadBody(request *http.Request) ([]byte, error) {
	body := http.MaxBytesReader(nil, request.Body, maxBodyBytes)
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, validate.ErrInvalidJSON
	}
	return raw, nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}
