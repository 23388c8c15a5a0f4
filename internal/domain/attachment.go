package domain

import "time"

// Folder link targets.
const (
	LinkCategory     = "category"
	LinkEvent        = "event"
	LinkContribution = "contribution"
)

// AttachmentFolder groups attachments under a category, event or contribution.
type AttachmentFolder struct {
	ID             int
	LinkType       string
	CategoryID     *int
	EventID        *int
	ContributionID *int
	Title          string
	IsDefault      bool
	Protection     string
}

type Attachment struct {
	ID             int
	FolderID       int
	Title          string
	Filename       string
	ContentType    string
	Size           int64
	MD5            string
	StorageBackend string
	StoragePath    string
	CreatedByID    int
	CreatedAt      time.Time
}
