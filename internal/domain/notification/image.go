package notification

import "strings"

type ImageAction string

const (
	ImageCreate ImageAction = "CREATE"
	ImageUpdate ImageAction = "UPDATE"
)

// ImageEvent is emitted after a product image has been uploaded to blob storage.
type ImageEvent struct {
	ProductID   string      `json:"productId"`
	ProductName string      `json:"productName"`
	ImageURL    string      `json:"imageUrl"`
	Action      ImageAction `json:"action"`
	ProcessTime Timestamp   `json:"processTime"`
	FileName    string      `json:"fileName"`
	FileSize    int64       `json:"fileSize"`
}

func (e ImageEvent) Validate() error {
	if strings.TrimSpace(e.ProductID) == "" {
		return invalid("productId is required")
	}
	if e.FileSize < 0 {
		return invalid("fileSize must be non-negative, got %d", e.FileSize)
	}
	return nil
}
