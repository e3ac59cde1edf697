package schema

// StrmRecordTable represents the 'strm.record' table
type StrmRecordTable struct {
	Table        string
	ID           string
	Title        string
	Year         string
	MediaType    string
	SourceName   string
	Files        string
	SuccessCount string
	SkippedCount string
	CreatedAt    string
	UpdatedAt    string
}

// StrmRecord is the schema definition for strm.record
var StrmRecord = StrmRecordTable{
	Table:        "strm.record",
	ID:           "id",
	Title:        "title",
	Year:         "year",
	MediaType:    "mediatype",
	SourceName:   "sourcename",
	Files:        "files",
	SuccessCount: "successcount",
	SkippedCount: "skippedcount",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns every column in insert/select order.
func (t StrmRecordTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Year, t.MediaType, t.SourceName, t.Files,
		t.SuccessCount, t.SkippedCount, t.CreatedAt, t.UpdatedAt,
	}
}
