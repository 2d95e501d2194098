package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DocumentModel representa la tabla documents. El archivo vive en la propia
// fila (bytea), igual que las imágenes de referencia de los usuarios.
type DocumentModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	FileName    string    `gorm:"size:255;not null" json:"file_name"`
	ContentType string    `gorm:"size:100;not null" json:"content_type"`
	Size        int64     `gorm:"not null" json:"size"`
	Data        []byte    `gorm:"type:bytea" json:"-"`

	Meta datatypes.JSON `gorm:"type:jsonb" json:"meta,omitempty"`
	Tags pq.StringArray `gorm:"type:text[]" json:"tags,omitempty"`

	UploadedBy uuid.UUID `gorm:"type:uuid;not null" json:"uploaded_by"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DocumentModel) TableName() string {
	return "documents"
}

func (d *DocumentModel) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
