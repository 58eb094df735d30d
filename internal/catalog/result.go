package catalog

// Options select how a scan runs.
type Options struct {
	Mode    Mode
	Locale  string
	ForSale bool
}

// Result is the outcome of one scan.
type Result struct {
	Mode      Mode     `json:"mode"`
	Items     []string `json:"items"`
	Locale    string   `json:"locale"`
	Unmatched []string `json:"unmatched"`
}
