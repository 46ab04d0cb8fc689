// Package httpx implements the request envelope parsing and canonical JSON
// response formatting shared by every handler.
package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"finbook/internal/apierr"
)

// MaxBodyBytes is the largest accepted request body.
const MaxBodyBytes = 10000

// DecodeBody reads and parses a JSON request body. The checks run in order:
// declared size, emptiness, JSON syntax, root shape. Numbers are kept as
// json.Number so amounts survive without float rounding. The body is
// consumed exactly once; DecodeBody never panics.
func DecodeBody(r *http.Request) (map[string]any, *apierr.Error) {
	declared := r.ContentLength
	if header := r.Header.Get("Content-Length"); header != "" {
		if length, err := strconv.ParseInt(header, 10, 64); err == nil {
			declared = length
		}
	}
	if declared > MaxBodyBytes {
		return nil, apierr.New(http.StatusRequestEntityTooLarge, apierr.CodePayloadTooLarge, "Request payload exceeds the maximum allowed size")
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeInvalidJSON, "Request body could not be read").WithCause(err)
	}
	if len(body) > MaxBodyBytes {
		return nil, apierr.New(http.StatusRequestEntityTooLarge, apierr.CodePayloadTooLarge, "Request payload exceeds the maximum allowed size")
	}
	if strings.TrimSpace(string(body)) == "" {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeEmptyBody, "Request body is empty")
	}
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var parsed any
	if err := decoder.Decode(&parsed); err != nil {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeInvalidJSON, "Request body is not valid JSON").WithCause(err)
	}
	object, ok := parsed.(map[string]any)
	if !ok {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeInvalidRequestStructure, "Request body must be a JSON object")
	}
	return object, nil
}
