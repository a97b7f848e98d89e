package domain

// Comment is a reader's note attached to a position in a book.
type Comment struct {
	ID            string   `json:"id"`
	BookID        string   `json:"bookId"`
	Text          string   `json:"text"`
	Page          *int     `json:"pageNumber,omitempty"`
	Percentage    *float64 `json:"percentage,omitempty"`
	HasSpoilers   bool     `json:"hasSpoilers"`
	VotesCounter  int      `json:"votesCounter"`
	AuthorID      string   `json:"profileId"`
	AuthorName    string   `json:"username"`
	CreatedAt     string   `json:"publishedDate"`
	ParentComment string   `json:"parentCommentId,omitempty"`
}
