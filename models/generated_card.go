package models

import "github.com/google/uuid"

// GeneratedCard tek kayıt dışa aktarımında blob deposuna yazılan
// dokümanın defter kaydıdır.
type GeneratedCard struct {
	BaseModel
	RecordID uuid.UUID `gorm:"type:uuid;index;not null" json:"record_id"`
	FileRef  string    `gorm:"type:varchar(500);not null" json:"file_ref"`
	Format   string    `gorm:"type:varchar(10);not null" json:"format"` // pdf | png
}
