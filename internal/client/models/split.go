package models

// UserSplit is one user's computed share of a room: the monetary total and
// the indices of the items it covers. Total keeps full precision; rounding
// happens only at display time.
type UserSplit struct {
	Total float64 `json:"total"`
	Items []int   `json:"items"`
}
