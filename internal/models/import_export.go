package models

import "time"

type ImportValidationError struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Message string `json:"message"`
	Value   string `json:"value"`
	Code    string `json:"code"`
}

type ImportSummary struct {
	TotalRows      int                     `json:"total_rows"`
	ProcessedRows  int                     `json:"processed_rows"`
	SuccessCount   int                     `json:"success_count"`
	ErrorCount     int                     `json:"error_count"`
	CreatedNotes   []uint                  `json:"created_notes"`
	Errors         []ImportValidationError `json:"errors"`
	ProcessingTime time.Duration           `json:"processing_time"`
}
