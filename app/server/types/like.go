package types

type LikeRequest struct {
	ItemID uint   `json:"item_id"`
	Item   string `json:"item"` // "post" or "comment" ("P"/"C" accepted)
}

type LikeResponse struct {
	Message string `json:"message"`
	Status  bool   `json:"status"`
}
