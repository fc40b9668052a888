// Package cxml construye documentos cXML OrderRequest para intercambio
// electrónico de órdenes de compra con proveedores que soportan el protocolo.
package cxml

import (
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// Identidades del hotel en la red cXML (configurables por despliegue).
type Identity struct {
	FromDomain   string // ej. "NetworkID"
	FromIdentity string
	SenderDomain string
	SenderSecret string
	Currency     string // ej. "USD", "COP"
}

// OrderRequestBuilder implementa purchasing.CXMLBuilder sobre etree.
type OrderRequestBuilder struct {
	identity Identity
}

// NewOrderRequestBuilder construye el builder con la identidad del hotel.
func NewOrderRequestBuilder(identity Identity) *OrderRequestBuilder {
	return &OrderRequestBuilder{identity: identity}
}

// BuildOrderRequest serializa la orden como cXML OrderRequest (DTD 1.2.014).
// El payloadID combina número de orden y timestamp para ser único por envío.
func (b *OrderRequestBuilder) BuildOrderRequest(po *entity.PurchaseOrder, supplier *entity.Supplier) ([]byte, error) {
	if po == nil {
		return nil, fmt.Errorf("cxml: orden nil")
	}
	now := time.Now()

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective(`DOCTYPE cXML SYSTEM "http://xml.cxml.org/schemas/cXML/1.2.014/cXML.dtd"`)

	root := doc.CreateElement("cXML")
	root.CreateAttr("payloadID", fmt.Sprintf("%s.%d@compras-api", po.PONumber, now.Unix()))
	root.CreateAttr("timestamp", now.Format(time.RFC3339))
	root.CreateAttr("xml:lang", "es-CO")

	b.addHeader(root, supplier)

	request := root.CreateElement("Request")
	request.CreateAttr("deploymentMode", "production")
	orderReq := request.CreateElement("OrderRequest")

	header := orderReq.CreateElement("OrderRequestHeader")
	header.CreateAttr("orderID", po.PONumber)
	header.CreateAttr("orderDate", po.CreatedAt.Format(time.RFC3339))
	header.CreateAttr("type", "new")

	total := header.CreateElement("Total")
	money := total.CreateElement("Money")
	money.CreateAttr("currency", b.identity.Currency)
	money.SetText(po.TotalAmount.StringFixed(2))

	if po.ExpectedDeliveryDate != nil {
		shipTo := header.CreateElement("ShipTo")
		addr := shipTo.CreateElement("Address")
		addr.CreateElement("Name").SetText(po.TargetLocationID)
		header.CreateElement("Comments").SetText(
			"Entrega esperada: " + po.ExpectedDeliveryDate.Format("2006-01-02"))
	} else if po.Notes != "" {
		header.CreateElement("Comments").SetText(po.Notes)
	}

	for i, l := range po.Lines {
		itemOut := orderReq.CreateElement("ItemOut")
		itemOut.CreateAttr("lineNumber", fmt.Sprintf("%d", i+1))
		itemOut.CreateAttr("quantity", l.Quantity.String())

		itemID := itemOut.CreateElement("ItemID")
		itemID.CreateElement("SupplierPartID").SetText(l.ItemID)

		detail := itemOut.CreateElement("ItemDetail")
		unitPrice := detail.CreateElement("UnitPrice")
		priceMoney := unitPrice.CreateElement("Money")
		priceMoney.CreateAttr("currency", b.identity.Currency)
		priceMoney.SetText(l.UnitCost.StringFixed(2))
		detail.CreateElement("Description").SetText(l.Name)
		detail.CreateElement("UnitOfMeasure").SetText(l.Unit)
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

// addHeader arma el bloque From/To/Sender del sobre cXML.
func (b *OrderRequestBuilder) addHeader(root *etree.Element, supplier *entity.Supplier) {
	header := root.CreateElement("Header")

	from := header.CreateElement("From")
	fromCred := from.CreateElement("Credential")
	fromCred.CreateAttr("domain", b.identity.FromDomain)
	fromCred.CreateElement("Identity").SetText(b.identity.FromIdentity)

	to := header.CreateElement("To")
	toCred := to.CreateElement("Credential")
	toCred.CreateAttr("domain", b.identity.FromDomain)
	supplierName := ""
	if supplier != nil {
		supplierName = supplier.Name
	}
	toCred.CreateElement("Identity").SetText(supplierName)

	sender := header.CreateElement("Sender")
	senderCred := sender.CreateElement("Credential")
	senderCred.CreateAttr("domain", b.identity.SenderDomain)
	senderCred.CreateElement("Identity").SetText(b.identity.FromIdentity)
	if b.identity.SenderSecret != "" {
		senderCred.CreateElement("SharedSecret").SetText(b.identity.SenderSecret)
	}
	sender.CreateElement("UserAgent").SetText("compras-api")
}
