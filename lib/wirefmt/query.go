// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package wirefmt

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Query renders a client-side parameter bag into url.Values with wire
// naming. Nil values are omitted entirely (the API treats an absent
// parameter and an explicit null the same way). Slice values are
// comma-joined, matching the server's multi-id parameter format
// (ids=1,2,3). All other values render with their natural string form.
func Query(params map[string]any) url.Values {
	values := make(url.Values, len(params))
	for key, value := range params {
		if value == nil {
			continue
		}
		values.Set(Underscore(key), renderValue(value))
	}
	return values
}

func renderValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts[i] = renderValue(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}
