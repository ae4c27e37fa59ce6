package models

// Asset is a single tracked inventory record. The hardware specification
// fields (processor, ram, storage, operatingSystem) are pointers so they are
// omitted entirely for categories that do not carry them; an applicable but
// blank value is rejected at validation time and never stored.
type Asset struct {
	ID              int64   `json:"id"`
	Code            string  `json:"code"`
	CategoryName    string  `json:"categoryName"`
	Description     string  `json:"description"`
	SerialNumber    string  `json:"serialNumber"`
	Division        string  `json:"division"`
	OwnerUsername   string  `json:"ownerUsername"`
	Brand           string  `json:"brand"`
	PurchaseDate    string  `json:"purchaseDate"`
	Quantity        int     `json:"quantity"`
	Price           float64 `json:"price"`
	PhotoFilename   string  `json:"photoFilename,omitempty"`
	Processor       *string `json:"processor,omitempty"`
	RAM             *string `json:"ram,omitempty"`
	Storage         *string `json:"storage,omitempty"`
	OperatingSystem *string `json:"operatingSystem,omitempty"`
}

// IsValid is the minimal shape check applied to each record loaded from disk.
// Records failing it are dropped with a warning, never treated as fatal.
func (a Asset) IsValid() bool {
	return a.ID != 0 &&
		a.CategoryName != "" &&
		a.Description != "" &&
		a.SerialNumber != "" &&
		a.Quantity >= 1 &&
		a.Price >= 0
}
