package core

import "encoding/json"

// MaxResults is the maximum number of match records returned by a query.
const MaxResults = 50

// NotAvailable is reported as the retail price of records from sheets without a retail price column.
const NotAvailable = "N/A"

// Field names a semantic column of a product sheet.
type Field string

const (
	FieldCode        Field = "code"
	FieldQuantity    Field = "quantity"
	FieldDropPrice   Field = "dropPrice"
	FieldRetailPrice Field = "retailPrice"
	FieldImg         Field = "img"
)

// Fields lists every semantic field in resolution order.
var Fields = []Field{FieldCode, FieldQuantity, FieldDropPrice, FieldRetailPrice, FieldImg}

// MandatoryFields must all resolve for a sheet to be scanned.
var MandatoryFields = []Field{FieldCode, FieldQuantity, FieldDropPrice}

// ParseField returns the Field with the given name.
func ParseField(name string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// HeaderLabels maps each semantic field to the header text that identifies its column.
type HeaderLabels map[Field]string

// DefaultHeaderLabels returns the header labels used by the product spreadsheet.
func DefaultHeaderLabels() HeaderLabels {
	return HeaderLabels{
		FieldCode:        "код",
		FieldQuantity:    "кількість",
		FieldDropPrice:   "ціна дроп",
		FieldRetailPrice: "наша ціна роздріб",
		FieldImg:         "img",
	}
}

// Clone returns a copy of the labels.
func (h HeaderLabels) Clone() HeaderLabels {
	out := make(HeaderLabels, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// ColumnIndex holds the zero-based header position of each resolved field.
// A field missing from the index is absent from the sheet.
type ColumnIndex map[Field]int

// Position returns the column of f and whether it was found.
func (c ColumnIndex) Position(f Field) (int, bool) {
	pos, ok := c[f]
	return pos, ok
}

// Missing returns the fields from want that did not resolve, in the order given.
func (c ColumnIndex) Missing(want ...Field) []Field {
	var missing []Field
	for _, f := range want {
		if _, ok := c[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// MatchRecord is a single matching product row.
type MatchRecord struct {
	Category    string  `json:"category"` // Title of the sheet the row came from
	Code        string  `json:"code"`
	Quantity    string  `json:"quantity"`
	DropPrice   string  `json:"dropPrice"`
	RetailPrice string  `json:"retailPrice"`
	Img         *string `json:"img"`
}

// QueryRequest is a product code lookup.
type QueryRequest struct {
	PartialCode string `json:"code" form:"code"`
}

// Normalized returns the trimmed, lower-cased partial code.
func (q QueryRequest) Normalized() string {
	return NormalizeCode(q.PartialCode)
}

// QueryResult is the outcome of a lookup.
// Data is only meaningful when Success is true; Error only when it is false.
type QueryResult struct {
	Success bool
	Data    []MatchRecord
	Error   string
}

// Succeeded builds a successful result.
func Succeeded(data []MatchRecord) *QueryResult {
	if data == nil {
		data = []MatchRecord{}
	}
	return &QueryResult{Success: true, Data: data}
}

// Failed builds a failed result carrying msg.
func Failed(msg string) *QueryResult {
	return &QueryResult{Success: false, Error: msg}
}

type successJSON struct {
	Success bool          `json:"success"`
	Data    []MatchRecord `json:"data"`
}

type failureJSON struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// MarshalJSON emits {success, data} or {success, error} depending on the outcome.
func (r QueryResult) MarshalJSON() ([]byte, error) {
	if !r.Success {
		return json.Marshal(failureJSON{Success: false, Error: r.Error})
	}
	data := r.Data
	if data == nil {
		data = []MatchRecord{}
	}
	return json.Marshal(successJSON{Success: true, Data: data})
}

// UnmarshalJSON accepts both result shapes.
func (r *QueryResult) UnmarshalJSON(b []byte) error {
	var raw struct {
		Success bool          `json:"success"`
		Data    []MatchRecord `json:"data"`
		Error   string        `json:"error"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.Success = raw.Success
	r.Data = raw.Data
	r.Error = raw.Error
	return nil
}
