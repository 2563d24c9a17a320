package models

// Submission is one invoice form submission. It lives for exactly one
// request: built from the form, written out as a ledger row, discarded.
// Nothing here is persisted locally.
type Submission struct {
	TicketID  string `json:"ticket_id"`
	RentStart string `json:"rent_start"`
	RentEnd   string `json:"rent_end"`
	Name      string `json:"name"`
	Mobile    string `json:"mobile"`
	Email     string `json:"email"`
	City      string `json:"city"`
	GSTType   string `json:"gst_type"`
	Timestamp string `json:"timestamp"` // DD/MM/YYYY HH:MM:SS, local time
}

// Upload is a raw file part as received from the form, before it reaches
// remote storage.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}
