package logger

import (
	"fmt"
	"strings"
)

func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return "{}"
	}

	var sb strings.Builder

	sb.WriteByte('{')

	for i, field := range fields {
		if i > 0 {
			sb.WriteString(", ")
		}

		fmt.Fprintf(&sb, "%s: %+v", field.Key, field.Value)
	}

	sb.WriteByte('}')

	return sb.String()
}
