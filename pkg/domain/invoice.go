package domain

// InvoiceType classifies an invoice from the point of view of the bookkeeper.
type InvoiceType string

const (
	InvoiceExpense InvoiceType = "expense"
	InvoiceIncome  InvoiceType = "income"
)

// InvoiceExtractionResult is the data the extraction backend pulls out of an
// uploaded invoice. In minimal mode it is always SampleInvoice.
type InvoiceExtractionResult struct {
	InvoiceNumber string      `json:"invoice_number"`
	Date          string      `json:"date"`
	Total         Amount      `json:"total"`
	ClientName    string      `json:"client_name"`
	Type          InvoiceType `json:"type"`
	VATAmount     Amount      `json:"vat_amount"`
}

// ProcessingResult wraps the extracted fields the way the full backend does.
type ProcessingResult struct {
	ExtractedData InvoiceExtractionResult `json:"extracted_data"`
}

// InvoiceResponse is the body of a successful POST /process-invoice/.
type InvoiceResponse struct {
	Success          bool             `json:"success"`
	Message          string           `json:"message"`
	Filename         string           `json:"filename"`
	ProcessingResult ProcessingResult `json:"processing_result"`
}

const (
	sampleFilename       = "factura.pdf"
	sampleInvoiceMessage = "Procesamiento de factura completado (modo minimal)"
)

// SampleInvoice returns a fresh copy of the canned extraction result.
func SampleInvoice() InvoiceExtractionResult {
	return InvoiceExtractionResult{
		InvoiceNumber: "00015-00000305",
		Date:          "2025-08-28",
		Total:         MustAmount("75250.00"),
		ClientName:    "RESOURCES OPEN DOORS S.A.S.",
		Type:          InvoiceExpense,
		VATAmount:     MustAmount("13059.92"),
	}
}

// NewMinimalInvoiceResponse builds the canned upload response. The uploaded
// content never influences it.
func NewMinimalInvoiceResponse() InvoiceResponse {
	return InvoiceResponse{
		Success:  true,
		Message:  sampleInvoiceMessage,
		Filename: sampleFilename,
		ProcessingResult: ProcessingResult{
			ExtractedData: SampleInvoice(),
		},
	}
}
