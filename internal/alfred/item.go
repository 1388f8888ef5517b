// Package alfred holds the pieces shared by every workflow binary: the
// launcher's item model, the JSON sink that writes it, and the per-workflow
// data directory.
package alfred

// Item is a single row in the launcher's result list. Title and Arg are the
// only fields the launcher requires.
type Item struct {
	UID          string `json:"uid,omitempty"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle,omitempty"`
	Autocomplete string `json:"autocomplete,omitempty"`
	Arg          string `json:"arg"`
	Valid        *bool  `json:"valid,omitempty"`
}

// ItemBuilder assembles an Item field by field.
type ItemBuilder struct {
	item Item
}

// NewItem starts an item with the given title. The arg defaults to the
// title until Arg is called.
func NewItem(title string) *ItemBuilder {
	return &ItemBuilder{item: Item{Title: title, Arg: title}}
}

func (b *ItemBuilder) Subtitle(s string) *ItemBuilder {
	b.item.Subtitle = s
	return b
}

func (b *ItemBuilder) Autocomplete(s string) *ItemBuilder {
	b.item.Autocomplete = s
	return b
}

func (b *ItemBuilder) Arg(s string) *ItemBuilder {
	b.item.Arg = s
	return b
}

func (b *ItemBuilder) UID(s string) *ItemBuilder {
	b.item.UID = s
	return b
}

// Valid marks whether actioning the item is allowed. Unset means valid.
func (b *ItemBuilder) Valid(v bool) *ItemBuilder {
	b.item.Valid = &v
	return b
}

// Build returns the assembled item.
func (b *ItemBuilder) Build() Item {
	return b.item
}

// OpenPrefix starts the arg of every item that opens a URL when actioned.
const OpenPrefix = "open "

// OpenArg builds the arg the workflow's open command receives for url.
func OpenArg(url string) string {
	return OpenPrefix + url
}

// URLFromArg reverses OpenArg. ok is false for args that do not open a URL.
func URLFromArg(arg string) (url string, ok bool) {
	if len(arg) <= len(OpenPrefix) || arg[:len(OpenPrefix)] != OpenPrefix {
		return "", false
	}
	return arg[len(OpenPrefix):], true
}
