package domain

// Shelf is a named, user-curated list of books.
type Shelf struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"isPublic"`
	Books       []Book `json:"books"`
	OwnerID     string `json:"profileId"`
}
