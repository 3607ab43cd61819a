package model

type GenerateRequest struct {
	Key           string  `json:"key"`
	TimeSignature string  `json:"time_signature"`
	Measures      int     `json:"measures"`
	Difficulty    string  `json:"difficulty"`
	Seed          *uint64 `json:"seed,omitempty"`
	Random        bool    `json:"random,omitempty"`
}

type GenerateResponse struct {
	ID       string   `json:"id"`
	Seed     uint64   `json:"seed"`
	Warnings []string `json:"warnings,omitempty"`
	Score    Score    `json:"score"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
