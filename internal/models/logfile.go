package models

// LogFile is a raw log file picked up by the collector.
type LogFile struct {
	Name  string
	Path  string
	Lines []string
}

// ArchiveMove records a processed log file being relocated to the archive.
type ArchiveMove struct {
	From string
	To   string
}

// CollectResult summarizes one collector run.
type CollectResult struct {
	ReportPath string
	Files      []string
	Moves      []ArchiveMove
	Matched    int
}
