package models

type ChecklistItem struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	TaskID      string `gorm:"type:varchar(36);not null;index" json:"-"`
	Description string `gorm:"type:text;not null" json:"description"`
	IsCompleted bool   `gorm:"not null;default:false" json:"is_completed"`
	Position    int    `gorm:"not null;default:0" json:"-"`
}
