package model

// Category groups items. ItemCount is computed on read.
type Category struct {
	ID        int64   `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	Slug      string  `db:"slug" json:"slug"`
	Icon      *string `db:"icon" json:"icon"`
	ItemCount int     `db:"item_count" json:"itemCount"`
}

// CategoryList is the response envelope for the category listing.
type CategoryList struct {
	Categories []Category `json:"categories"`
}
