package alfred

import (
	"encoding/json"
	"fmt"
	"io"
)

type itemList struct {
	Items []Item `json:"items"`
}

// WriteItems serializes items in the launcher's script-filter format:
// {"items":[...]}. A nil slice is written as an empty list.
func WriteItems(w io.Writer, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(itemList{Items: items}); err != nil {
		return fmt.Errorf("failed to write alfred items->json: %w", err)
	}
	return nil
}
