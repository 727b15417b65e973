package model

// SourceProvenance records what one input file contributed to a table.
type SourceProvenance struct {
	Source  string `json:"source"`
	Name    string `json:"name,omitempty"`
	Bytes   int    `json:"bytes"`
	Records int    `json:"records"`   // every record, header and metadata included
	Rows    int    `json:"data_rows"` // district rows after skipping and filtering
}
