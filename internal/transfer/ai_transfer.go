package transfer

type GenerateRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
	System string `json:"system,omitempty"`
}

type GenerateResponse struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

type AIModel struct {
	ID       string `json:"id"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}
