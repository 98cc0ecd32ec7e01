package pixabay

// SearchResponse is the root object of the Pixabay image search endpoint
type SearchResponse struct {
	Total     int   `json:"total"`
	TotalHits int   `json:"totalHits"`
	Hits      []Hit `json:"hits"`
}

// Hit is one image in a search response
type Hit struct {
	ID              int    `json:"id"`
	PageURL         string `json:"pageURL"`
	Type            string `json:"type"`
	Tags            string `json:"tags"`
	PreviewURL      string `json:"previewURL,omitempty"`
	PreviewWidth    int    `json:"previewWidth,omitempty"`
	PreviewHeight   int    `json:"previewHeight,omitempty"`
	WebformatURL    string `json:"webformatURL"`
	WebformatWidth  int    `json:"webformatWidth,omitempty"`
	WebformatHeight int    `json:"webformatHeight,omitempty"`
	LargeImageURL   string `json:"largeImageURL"`
	ImageWidth      int    `json:"imageWidth"`
	ImageHeight     int    `json:"imageHeight"`
	ImageSize       int    `json:"imageSize,omitempty"`
	Views           int    `json:"views"`
	Downloads       int    `json:"downloads"`
	Collections     int    `json:"collections,omitempty"`
	Likes           int    `json:"likes"`
	Comments        int    `json:"comments,omitempty"`
	UserID          int    `json:"user_id,omitempty"`
	User            string `json:"user"`
	UserImageURL    string `json:"userImageURL,omitempty"`
}
