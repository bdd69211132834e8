package util

import (
	"maps"
	"slices"
)

// FixJSONSchemaStrict готовит схему к strict-режиму OpenAI, меняя её на месте:
// каждый объект перечисляет все свойства в required (по алфавиту) и запрещает лишние поля.
func FixJSONSchemaStrict(node any) {
	switch n := node.(type) {
	case []any:
		for _, el := range n {
			FixJSONSchemaStrict(el)
		}
	case map[string]any:
		if props, ok := n["properties"].(map[string]any); ok {
			strictObject(n, props)
		}
		for _, key := range []string{"items", "oneOf", "anyOf", "allOf"} {
			if child, ok := n[key]; ok {
				FixJSONSchemaStrict(child)
			}
		}
	}
}

func strictObject(obj, props map[string]any) {
	if _, ok := obj["type"]; !ok {
		obj["type"] = "object"
	}
	obj["required"] = slices.Sorted(maps.Keys(props))
	obj["additionalProperties"] = false
	for _, p := range props {
		FixJSONSchemaStrict(p)
	}
}
