package dto

// LogEntryResponse ids are md5 hashes of the raw log line, not UUIDs.
type LogEntryResponse struct {
	Id        string                 `json:"id"`
	Level     string                 `json:"level"`
	Module    string                 `json:"module"`
	Message   string                 `json:"message"`
	Timestamp string                 `json:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

type LogQueryRequest struct {
	Level  string `query:"level" validate:"omitempty,oneof=debug info warn error"`
	Module string `query:"module"`
	Source string `query:"source" validate:"omitempty,oneof=app audit"`
	Limit  int    `query:"limit" validate:"gte=0,lte=500"`
	Offset int    `query:"offset" validate:"gte=0"`
}
