package models

// AssetRequest carries the fields of a create or update submission. Values
// arrive from a multipart form, so quantity and price are strings here and
// coerced by the asset service.
type AssetRequest struct {
	Code            string `form:"code" json:"code"`
	CategoryName    string `form:"categoryName" json:"categoryName"`
	Description     string `form:"description" json:"description"`
	SerialNumber    string `form:"serialNumber" json:"serialNumber"`
	Division        string `form:"division" json:"division"`
	OwnerUsername   string `form:"ownerUsername" json:"ownerUsername"`
	Brand           string `form:"brand" json:"brand"`
	PurchaseDate    string `form:"purchaseDate" json:"purchaseDate"`
	Quantity        string `form:"quantity" json:"quantity"`
	Price           string `form:"price" json:"price"`
	Processor       string `form:"processor" json:"processor"`
	RAM             string `form:"ram" json:"ram"`
	Storage         string `form:"storage" json:"storage"`
	OperatingSystem string `form:"operatingSystem" json:"operatingSystem"`
}

// CategoryRequest is the body of a category create or rename.
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}
