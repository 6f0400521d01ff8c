package utils

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// ConvertToJSON converts the provided value to a compact JSON string.
func ConvertToJSON(data interface{}) (string, error) {
	json := jsoniter.ConfigDefault
	j, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(j), nil
}

// ConvertToJSONIndented converts the provided value to an indented JSON string.
func ConvertToJSONIndented(data interface{}) (string, error) {
	json := jsoniter.ConfigDefault
	j, err := json.MarshalIndent(data, "", strings.Repeat(" ", 2))
	if err != nil {
		return "", err
	}
	return string(j), nil
}
