package dto

// CreatePostRequest is the payload for starting a forum thread.
type CreatePostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Stocks  []string `json:"stocks"`
}

// CreateCommentRequest is the payload for commenting on a post.
type CreateCommentRequest struct {
	Content string `json:"content"`
}
