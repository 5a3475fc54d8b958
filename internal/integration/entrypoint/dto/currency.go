package dto

// ChangeCurrencyRequest represents the request body for a currency switch.
type ChangeCurrencyRequest struct {
	Currency string `json:"currency" binding:"required,len=3"`
}

// ChangeCurrencyResponse represents the response for a currency switch.
type ChangeCurrencyResponse struct {
	Source  string `json:"source"`
	Target  string `json:"target"`
	Rate    string `json:"rate"`
	Changed bool   `json:"changed"`
}

// PreferenceRequest represents the request body for a preference write.
type PreferenceRequest struct {
	Value string `json:"value"`
}

// PreferenceResponse represents a single preference in API responses.
type PreferenceResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
