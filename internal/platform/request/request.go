// Copyright (c) 2026 Facetrace. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away common body decoding patterns, ensuring consistent error
handling. Both JSON and URL-encoded form bodies are accepted, since browser
forms and the SPA post to the same endpoints.
*/
package requestutil

import (
	"encoding/json"
	"mime"
	"net/http"
	"reflect"

	"github.com/taibuivan/facetrace/internal/platform/validate"
)

// MaxBodyBytes caps how much of a request body is read.
const MaxBodyBytes = 1 << 20

const formContentType = "application/x-www-form-urlencoded"

/*
DecodeBody reads the request body into target.

Parameters:
  - writer: http.ResponseWriter (used to enforce the body size limit)
  - request: *http.Request
  - target: pointer to a struct with `json` tags

Returns:
  - error: validate.ErrInvalidPayload if decoding fails, otherwise nil

Form bodies are mapped onto string fields using the same `json` tag names.
*/
func DecodeBody(writer http.ResponseWriter, request *http.Request, target interface{}) error {
	request.Body = http.MaxBytesReader(writer, request.Body, MaxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(request.Header.Get("Content-Type"))
	if mediaType == formContentType {
		return decodeForm(request, target)
	}

	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidPayload
	}
	return nil
}

// decodeForm copies form values into the string fields of target.
func decodeForm(request *http.Request, target interface{}) error {
	if err := request.ParseForm(); err != nil {
		return validate.ErrInvalidPayload
	}

	value := reflect.ValueOf(target)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return validate.ErrInvalidPayload
	}

	structValue := value.Elem()
	structType := structValue.Type()
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.String || !field.IsExported() {
			continue
		}

		name := jsonName(field)
		if name == "" {
			continue
		}

		if values, ok := request.PostForm[name]; ok && len(values) > 0 {
			structValue.Field(i).SetString(values[0])
		}
	}

	return nil
}

// jsonName returns the key a field is published under, or "" when skipped.
func jsonName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return ""
	}

	for i := 0; i < len(tag); i++ {
		if tag[i] == ',' {
			tag = tag[:i]
			break
		}
	}

	if tag == "" {
		return field.Name
	}
	return tag
}
