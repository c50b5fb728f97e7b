package transfer

type AccountConnection struct {
	Platform    string `json:"platform"`
	Token       string `json:"token"`
	ChannelID   string `json:"channel_id,omitempty"`
	ChannelName string `json:"channel_name,omitempty"`
}

type AccountInfo struct {
	ID          string `json:"id"`
	Platform    string `json:"platform"`
	ChannelName string `json:"channel_name,omitempty"`
	IsActive    bool   `json:"is_active"`
	ConnectedAt string `json:"connected_at,omitempty"`
}
