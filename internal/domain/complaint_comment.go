package domain

import "time"

// ComplaintComment is a remark attached to a complaint. Internal comments are
// visible to ministry staff and admins only.
type ComplaintComment struct {
	ID          string
	ComplaintID string
	AuthorID    string
	Content     string
	IsInternal  bool
	CreatedAt   time.Time
}

// ComplaintAttachment stores metadata for a file already uploaded to object
// storage and referenced at complaint creation time. Never mutated.
type ComplaintAttachment struct {
	ID          string
	ComplaintID string
	FileName    string
	FileURL     string
	FileType    string
	FileSize    int64
	MimeType    string
	CreatedAt   time.Time
}
