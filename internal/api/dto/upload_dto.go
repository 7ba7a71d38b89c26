package dto

// UploadResponse reports the outcome of a spreadsheet ingestion.
type UploadResponse struct {
	Message          string `json:"message"`
	FileName         string `json:"file_name"`
	TicketsProcessed int    `json:"tickets_processed"`
	AgentsCreated    int    `json:"agents_created"`
}

// ClearDataResponse reports a bulk clear.
type ClearDataResponse struct {
	Message        string `json:"message"`
	TicketsDeleted int64  `json:"tickets_deleted"`
	AgentsDeleted  int64  `json:"agents_deleted"`
}
