package gatecli

import (
	"encoding/json"
	"fmt"
)

// printOutput prints output in a human-friendly way:
// - if it's a string, prints it directly
// - otherwise pretty-prints as JSON
func printOutput(output any) {
	switch v := output.(type) {
	case string:
		fmt.Println(v)
	case []byte:
		fmt.Println(string(v))
	default:
		b, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			// fallback to default formatting
			fmt.Println(output)
			return
		}
		fmt.Println(string(b))
	}
}
