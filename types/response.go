package types

// DataResponse is the envelope for transport-level errors and auxiliary
// endpoints. Extraction payloads use ExtractionResult instead.
type DataResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
