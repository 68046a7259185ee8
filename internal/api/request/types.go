package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// StartMatchRequest is the request body for starting a match
type StartMatchRequest struct {
	Mode          string `json:"mode"`
	Name1         string `json:"name1,omitempty"`
	Name2         string `json:"name2,omitempty"`
	VsComputer    bool   `json:"vs_computer,omitempty"`
	ComputerLevel int    `json:"computer_level,omitempty"`
}

// SubmitDartRequest is the request body for scoring a single dart.
// Zero is a legal value and means a miss.
type SubmitDartRequest struct {
	Value int `json:"value"`
}

// SubmitVisitRequest is the request body for scoring a whole visit
// as one aggregate total
type SubmitVisitRequest struct {
	Total int `json:"total"`
}

// EndVisitRequest is the request body for ending the current visit
type EndVisitRequest struct {
	Busted bool `json:"busted,omitempty"`
}
