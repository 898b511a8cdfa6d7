package models

// Attachment is a stored image reference: the original file name and the
// object key under which storage holds the bytes. Position is the 1-based
// display order and is not part of the wire format.
type Attachment struct {
	FileName string `json:"fileName"`
	FileKey  string `json:"fileKey"`
	Position int    `json:"-"`
}

// Empty reports whether no upload has been bound.
func (a Attachment) Empty() bool { return a.FileKey == "" }

// Product is the product registration payload.
type Product struct {
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Price          float64      `json:"price"`
	Stock          int          `json:"stock"`
	ThumbnailImage *Attachment  `json:"thumbnailImage,omitempty"`
	ContentImages  []Attachment `json:"contentImages"`
}

// CartItem is the add-to-cart payload.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// PresignRequest asks the origin for a write URL.
type PresignRequest struct {
	FileName string `json:"fileName"`
}

// PresignResponse carries the write URL.
type PresignResponse struct {
	URL string `json:"url"`
}
