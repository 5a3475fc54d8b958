package model

// PreferenceModel represents the key-value preferences table.
type PreferenceModel struct {
	Key   string `gorm:"primaryKey;type:varchar(64)"`
	Value string `gorm:"type:text;not null"`
}

// TableName returns the table name for the PreferenceModel.
func (PreferenceModel) TableName() string {
	return "preferences"
}
