package internal

import (
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request bodies are loosely typed: numeric fields may arrive as JSON numbers or
// strings, references as hex strings. asInt coerces with a 0 fallback; parseInt
// propagates the failure for the fields that must reject bad input.

func parseInt(v any) (int, error) {
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	case string:
		return strconv.Atoi(strings.TrimSpace(n))
	case nil:
		return 0, fmt.Errorf("missing numeric value")
	default:
		return 0, fmt.Errorf("cannot parse %T as int", v)
	}
}

func asInt(v any) int {
	n, err := parseInt(v)
	if err != nil {
		return 0
	}
	return n
}

// objectID parses a required reference. A malformed ID fails the operation.
func objectID(v any) (primitive.ObjectID, error) {
	s, ok := v.(string)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("invalid object id: %v", v)
	}
	return primitive.ObjectIDFromHex(s)
}

// optionalObjectID parses a nullable reference: absent, null or empty means no
// reference; anything else must be a valid ID.
func optionalObjectID(v any) (*primitive.ObjectID, error) {
	if v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("invalid object id: %v", v)
	}
	if s == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
