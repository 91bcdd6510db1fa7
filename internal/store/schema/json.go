package schema

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// decodeStringArray decodes a jsonb column expected to hold a JSON array of
// strings. Malformed or empty data decodes to nil.
func decodeStringArray(data datatypes.JSON) []string {
	if len(data) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

// EncodeStringArray encodes a string slice into a jsonb column value.
// A nil slice encodes as an empty JSON array so the column is never SQL null.
func EncodeStringArray(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	data, _ := json.Marshal(values)
	return datatypes.JSON(data)
}
