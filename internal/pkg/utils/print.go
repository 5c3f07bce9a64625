package utils

import (
	"encoding/json"
	"fmt"
)

func PrintStruct(data interface{}) {
	dataJson, _ := json.MarshalIndent(data, "", "  ")
	fmt.Printf("%s\n", dataJson)
}

func GetOrDefault[T comparable](value T, defaultValue T) T {
	var zero T
	if value == zero {
		return defaultValue
	}
	return value
}
