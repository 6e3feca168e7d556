package response

type GenerateQRResponse struct {
	ImageURL string `json:"image_url"`
	Token    string `json:"token"`
}

type VerifyQRResponse struct {
	Valid         bool   `json:"valid"`
	WalletAddress string `json:"wallet_address,omitempty"`
	EventID       string `json:"event_id,omitempty"`
}
