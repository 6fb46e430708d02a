package domain

import "time"

// User models a community member, keyed uniquely by SteamID64.
// Created on first successful sign-in and never deleted; display fields and
// the last-login stamp are refreshed on every subsequent sign-in.
type User struct {
	SteamID      string    `json:"steamID"`
	DisplayName  string    `json:"displayName"`
	Avatar       string    `json:"avatar"`
	Role         Role      `json:"role"`
	RegisteredAt time.Time `json:"registeredAt"`
	LastLogin    time.Time `json:"lastLogin"`
}
