package model

import "time"

// UnknownAuthor is the placeholder stored when no author is supplied.
const UnknownAuthor = "Unknown author"

// Document stores one catalog entry. File-derived fields are written once
// by the upload pipeline and never change; only title, author, category and
// description are user-editable afterwards.
type Document struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	DocID       string    `gorm:"column:doc_id;uniqueIndex:idx_doc" json:"id"`
	Title       string    `gorm:"column:title" json:"title"`
	Author      string    `gorm:"column:author" json:"author"`
	Category    string    `gorm:"column:category;index:idx_doc_category" json:"category"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	FileName    string    `gorm:"column:file_name" json:"fileName"`
	Extension   string    `gorm:"column:file_extension" json:"fileExtension"`
	FileSize    string    `gorm:"column:file_size" json:"fileSize"`
	FileURL     string    `gorm:"column:file_url;type:text" json:"fileUrl"`
	PreviewURL  string    `gorm:"column:preview_url;type:text" json:"previewUrl"`
	DownloadURL string    `gorm:"column:download_url;type:text" json:"downloadUrl"`
	StorageID   string    `gorm:"column:storage_id" json:"-"`
	UploadTime  time.Time `gorm:"column:upload_time;index:idx_doc_upload_time" json:"uploadTime"`
}

// TableName overrides gorm to use the document table.
func (Document) TableName() string {
	return "document"
}
