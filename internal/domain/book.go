package domain

// Book is a catalogue entry.
type Book struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Authors          []string `json:"authors"`
	Description      string   `json:"description"`
	Picture          string   `json:"picture"`
	ThumbnailPicture string   `json:"thumbnail"`
	Publisher        string   `json:"publisher"`
	PublishedDate    string   `json:"publishedDate"`
	Categories       []string `json:"categories"`
	TotalPages       int      `json:"totalPages"`
	ISBN             []string `json:"isbn"`
	Lang             string   `json:"lang"`
	PeopleReading    int      `json:"peopleReadingIt"`
	RatingAverage    float64  `json:"ratingAverage"`
}

// BookProgress tracks how far the user got in a book.
// Exactly one of Page and Percentage is set.
type BookProgress struct {
	ID         string   `json:"id"`
	Page       *int     `json:"page,omitempty"`
	Percentage *float64 `json:"percentage,omitempty"`
	Finished   bool     `json:"finished"`
	GiveUp     bool     `json:"giveUp"`
	StartedAt  string   `json:"startedToRead"`
	FinishedAt string   `json:"finishedToRead,omitempty"`
}

// BookWithProgress pairs a book with the current user's reading progress.
type BookWithProgress struct {
	Book     Book         `json:"book"`
	Progress BookProgress `json:"bookProgress"`
}

// Rating is a user's score and review for a book.
type Rating struct {
	ID        string  `json:"id"`
	BookID    string  `json:"bookId"`
	Rate      float64 `json:"rating"`
	Text      string  `json:"review"`
	Username  string  `json:"username"`
	CreatedAt string  `json:"date"`
}
