package domain

// Profile is the public face of a user.
type Profile struct {
	ID         string   `json:"id"`
	Username   string   `json:"username"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Biography  string   `json:"biography"`
	Avatar     string   `json:"avatar"`
	Following  []string `json:"following"`
	ShelfCount int      `json:"shelvesCount"`
}
