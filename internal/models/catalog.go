package models

// Ingredient is immutable reference data. Names are not unique on their own:
// the same name may exist once per measurement unit ("salt" in grams and in
// kilograms are distinct rows).
type Ingredient struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	Name            string `gorm:"size:200;not null;index" json:"name"`
	MeasurementUnit string `gorm:"size:200;not null" json:"measurement_unit"`
}

// Tag is immutable reference data with a URL-safe slug.
type Tag struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Color string `gorm:"size:7;uniqueIndex;not null" json:"color"`
	Slug  string `gorm:"size:200;uniqueIndex;not null" json:"slug"`
}
