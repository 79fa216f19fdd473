// Package einvoice projects a finalized sales invoice into the tax authority's
// e-invoice / e-way-bill JSON schema.
package einvoice

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tradedesk/internal/domain"
	"tradedesk/internal/gst"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// Projector builds e-invoice documents for a fixed seller.
type Projector struct {
	seller     domain.Party
	classifier gst.Classifier
}

// NewProjector creates a Projector. The seller's state code decides intra-state supply.
func NewProjector(seller domain.Party) *Projector {
	home := seller.StateCode
	if home == "" {
		home = gst.StateCode(seller.GSTIN)
	}
	return &Projector{seller: seller, classifier: gst.NewClassifier(home)}
}

// Project is a convenience wrapper around NewProjector(seller).Project(inv).
func Project(inv *domain.SalesInvoice, seller domain.Party) ([]Document, error) {
	return NewProjector(seller).Project(inv)
}

// Project maps inv into a single-element e-invoice array. All amounts are
// recomputed from the line items and tax slab; cached invoice totals are ignored.
// Document-level discount is not apportioned to lines. TCS is charged on the
// tax-inclusive value and reported as OthChrg.
func (p *Projector) Project(inv *domain.SalesInvoice) ([]Document, error) {
	if err := p.checkRequired(inv); err != nil {
		return nil, err
	}

	intra := p.classifier.IsIntraState(inv.Buyer.GSTIN)
	slab := inv.Charges.TaxSlabPercent

	items := make([]Item, 0, len(inv.Items))
	assVal, cgstVal, sgstVal, igstVal := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for i, li := range inv.Items {
		totAmt := gst.Round2(li.Amount())
		discount := decimal.Zero
		assAmt := totAmt.Sub(discount)

		cgst, sgst, igst := decimal.Zero, decimal.Zero, decimal.Zero
		if intra {
			cgst = gst.Round2(assAmt.Mul(slab).Div(two).Div(hundred))
			sgst = cgst
		} else {
			igst = gst.Round2(assAmt.Mul(slab).Div(hundred))
		}
		itemVal := assAmt.Add(cgst).Add(sgst).Add(igst)

		desc := li.Description
		if desc == "" {
			desc = li.Name
		}
		items = append(items, Item{
			SlNo:       strconv.Itoa(i + 1),
			PrdDesc:    desc,
			IsServc:    serviceFlag(li.HSNCode),
			HsnCd:      li.HSNCode,
			Qty:        li.Quantity.InexactFloat64(),
			Unit:       unitCode(li.Unit),
			UnitPrice:  li.UnitPrice.InexactFloat64(),
			TotAmt:     totAmt.InexactFloat64(),
			Discount:   discount.InexactFloat64(),
			AssAmt:     assAmt.InexactFloat64(),
			GstRt:      slab.InexactFloat64(),
			IgstAmt:    igst.InexactFloat64(),
			CgstAmt:    cgst.InexactFloat64(),
			SgstAmt:    sgst.InexactFloat64(),
			TotItemVal: itemVal.InexactFloat64(),
		})

		assVal = assVal.Add(assAmt)
		cgstVal = cgstVal.Add(cgst)
		sgstVal = sgstVal.Add(sgst)
		igstVal = igstVal.Add(igst)
	}

	beforeTCS := gst.Round2(assVal.Add(cgstVal).Add(sgstVal).Add(igstVal))
	tcs := gst.Round2(beforeTCS.Mul(inv.Charges.TCSPercent).Div(hundred))

	buyerState := inv.Buyer.StateCode
	if buyerState == "" {
		buyerState = gst.StateCode(inv.Buyer.GSTIN)
	}
	sellerState := p.seller.StateCode
	if sellerState == "" {
		sellerState = gst.StateCode(p.seller.GSTIN)
	}

	doc := Document{
		Version: SchemaVersion,
		TranDtls: TranDetails{
			TaxSch:      "GST",
			SupTyp:      "B2B",
			RegRev:      "N",
			IgstOnIntra: "N",
		},
		DocDtls: DocDetails{
			Typ: "INV",
			No:  inv.Number,
			Dt:  FormatDate(inv.Date),
		},
		SellerDtls: PartyDetails{
			Gstin: p.seller.GSTIN,
			LglNm: p.seller.Name,
			Addr1: p.seller.Address1,
			Addr2: p.seller.Address2,
			Loc:   p.seller.Location,
			Pin:   pin(p.seller.Pincode),
			Stcd:  sellerState,
			Ph:    p.seller.Phone,
			Em:    p.seller.Email,
		},
		BuyerDtls: BuyerDetails{
			Gstin: inv.Buyer.GSTIN,
			LglNm: inv.Buyer.Name,
			Pos:   buyerState,
			Addr1: inv.Buyer.Address1,
			Addr2: inv.Buyer.Address2,
			Loc:   inv.Buyer.Location,
			Pin:   pin(inv.Buyer.Pincode),
			Stcd:  buyerState,
			Ph:    inv.Buyer.Phone,
			Em:    inv.Buyer.Email,
		},
		ItemList: items,
		ValDtls: ValueDetails{
			AssVal:    assVal.InexactFloat64(),
			CgstVal:   cgstVal.InexactFloat64(),
			SgstVal:   sgstVal.InexactFloat64(),
			IgstVal:   igstVal.InexactFloat64(),
			OthChrg:   tcs.InexactFloat64(),
			TotInvVal: gst.Round2(beforeTCS.Add(tcs)).InexactFloat64(),
		},
	}
	if inv.Transport != nil {
		doc.EwbDtls = ewbDetails(inv.Transport)
	}
	if inv.WorkOrderID != "" {
		doc.RefDtls = &ReferenceDtls{InvRm: "Against work order " + inv.WorkOrderID}
	}

	return []Document{doc}, nil
}

func (p *Projector) checkRequired(inv *domain.SalesInvoice) error {
	if inv == nil {
		return fmt.Errorf("%w: invoice", domain.ErrIncompleteInvoice)
	}
	var missing []string
	if strings.TrimSpace(p.seller.GSTIN) == "" {
		missing = append(missing, "seller.gstin")
	}
	if strings.TrimSpace(inv.Buyer.GSTIN) == "" {
		missing = append(missing, "buyer.gstin")
	}
	if strings.TrimSpace(inv.Number) == "" {
		missing = append(missing, "number")
	}
	if len(inv.Items) == 0 {
		missing = append(missing, "items")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrIncompleteInvoice, strings.Join(missing, ", "))
	}
	return nil
}

func ewbDetails(t *domain.Transport) *EwbDetails {
	mode := t.Mode
	if mode == "" {
		mode = "1"
	}
	ewb := &EwbDetails{
		TransID:    t.TransporterID,
		TransName:  t.TransporterName,
		Distance:   t.DistanceKM,
		TransDocNo: t.DocNumber,
		TransDocDt: FormatDate(t.DocDate),
		VehNo:      t.VehicleNumber,
		TransMode:  mode,
	}
	if t.VehicleNumber != "" {
		ewb.VehType = "R"
	}
	return ewb
}

// FormatDate converts an ISO date (YYYY-MM-DD, optionally followed by a time)
// to DD/MM/YYYY. Other values are returned unchanged.
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 10 {
		return s
	}
	t, err := time.Parse("2006-01-02", s[:10])
	if err != nil {
		return s
	}
	return t.Format("02/01/2006")
}

// SAC codes for services start with 99.
func serviceFlag(hsn string) string {
	if strings.HasPrefix(hsn, "99") {
		return "Y"
	}
	return "N"
}

var unitCodes = map[string]string{
	"":       "NOS",
	"nos":    "NOS",
	"pcs":    "PCS",
	"piece":  "PCS",
	"kg":     "KGS",
	"kgs":    "KGS",
	"ltr":    "LTR",
	"litre":  "LTR",
	"mtr":    "MTR",
	"meter":  "MTR",
	"box":    "BOX",
	"set":    "SET",
	"sqm":    "SQM",
	"ton":    "TON",
	"dozen":  "DOZ",
	"bundle": "BDL",
}

func unitCode(u string) string {
	if code, ok := unitCodes[strings.ToLower(strings.TrimSpace(u))]; ok {
		return code
	}
	return strings.ToUpper(u)
}

func pin(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
