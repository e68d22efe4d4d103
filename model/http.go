package model

type TransposeRequestBody struct {
	Text string `json:"text"`
	From string `json:"from"`
	To   string `json:"to"`
}

type TransposeResponse struct {
	Text     string `json:"text"`
	Stripped string `json:"stripped"`
}

type KeysResponse struct {
	Keys []string `json:"keys"`
}

type FavoriteRequestBody struct {
	Favorite bool `json:"favorite"`
}

type KeyChangeRequestBody struct {
	Key string `json:"key"`
	// Transpose rewrites the notes into the new key when true
	Transpose bool `json:"transpose"`
}

type OrderRequestBody struct {
	IDs []int64 `json:"ids"`
}

type PreviewResponse struct {
	Key      string `json:"key"`
	Notes    string `json:"notes"`
	Stripped string `json:"stripped"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
