package einvoice

// SchemaVersion is the e-invoice JSON schema version produced by Project.
const SchemaVersion = "1.1"

// Document is one invoice in the e-invoice/e-way-bill JSON schema.
type Document struct {
	Version    string         `json:"Version"`
	TranDtls   TranDetails    `json:"TranDtls"`
	DocDtls    DocDetails     `json:"DocDtls"`
	SellerDtls PartyDetails   `json:"SellerDtls"`
	BuyerDtls  BuyerDetails   `json:"BuyerDtls"`
	ItemList   []Item         `json:"ItemList"`
	ValDtls    ValueDetails   `json:"ValDtls"`
	EwbDtls    *EwbDetails    `json:"EwbDtls,omitempty"`
	RefDtls    *ReferenceDtls `json:"RefDtls,omitempty"`
}

// TranDetails describes the transaction category.
type TranDetails struct {
	TaxSch      string `json:"TaxSch"`
	SupTyp      string `json:"SupTyp"`
	RegRev      string `json:"RegRev"`
	IgstOnIntra string `json:"IgstOnIntra"`
}

// DocDetails identifies the invoice.
type DocDetails struct {
	Typ string `json:"Typ"`
	No  string `json:"No"`
	Dt  string `json:"Dt"`
}

// PartyDetails is the seller block.
type PartyDetails struct {
	Gstin string `json:"Gstin"`
	LglNm string `json:"LglNm"`
	TrdNm string `json:"TrdNm,omitempty"`
	Addr1 string `json:"Addr1"`
	Addr2 string `json:"Addr2,omitempty"`
	Loc   string `json:"Loc"`
	Pin   int    `json:"Pin"`
	Stcd  string `json:"Stcd"`
	Ph    string `json:"Ph,omitempty"`
	Em    string `json:"Em,omitempty"`
}

// BuyerDetails is the buyer block; Pos is the place-of-supply state code.
type BuyerDetails struct {
	Gstin string `json:"Gstin"`
	LglNm string `json:"LglNm"`
	Pos   string `json:"Pos"`
	Addr1 string `json:"Addr1"`
	Addr2 string `json:"Addr2,omitempty"`
	Loc   string `json:"Loc"`
	Pin   int    `json:"Pin"`
	Stcd  string `json:"Stcd"`
	Ph    string `json:"Ph,omitempty"`
	Em    string `json:"Em,omitempty"`
}

// Item is one invoice line with its apportioned tax.
type Item struct {
	SlNo       string  `json:"SlNo"`
	PrdDesc    string  `json:"PrdDesc"`
	IsServc    string  `json:"IsServc"`
	HsnCd      string  `json:"HsnCd"`
	Qty        float64 `json:"Qty"`
	Unit       string  `json:"Unit"`
	UnitPrice  float64 `json:"UnitPrice"`
	TotAmt     float64 `json:"TotAmt"`
	Discount   float64 `json:"Discount"`
	AssAmt     float64 `json:"AssAmt"`
	GstRt      float64 `json:"GstRt"`
	IgstAmt    float64 `json:"IgstAmt"`
	CgstAmt    float64 `json:"CgstAmt"`
	SgstAmt    float64 `json:"SgstAmt"`
	TotItemVal float64 `json:"TotItemVal"`
}

// ValueDetails holds document-level totals.
type ValueDetails struct {
	AssVal    float64 `json:"AssVal"`
	CgstVal   float64 `json:"CgstVal"`
	SgstVal   float64 `json:"SgstVal"`
	IgstVal   float64 `json:"IgstVal"`
	Discount  float64 `json:"Discount"`
	OthChrg   float64 `json:"OthChrg"`
	TotInvVal float64 `json:"TotInvVal"`
}

// EwbDetails carries e-way-bill transport data.
type EwbDetails struct {
	TransID    string `json:"TransId,omitempty"`
	TransName  string `json:"TransName,omitempty"`
	Distance   int    `json:"Distance"`
	TransDocNo string `json:"TransDocNo,omitempty"`
	TransDocDt string `json:"TransDocDt,omitempty"`
	VehNo      string `json:"VehNo,omitempty"`
	VehType    string `json:"VehType,omitempty"`
	TransMode  string `json:"TransMode,omitempty"`
}

// ReferenceDtls links the invoice to its originating work order.
type ReferenceDtls struct {
	InvRm string `json:"InvRm,omitempty"`
}
