package core

import (
	"github.com/google/uuid"
)

// Player identifies one side of a hot-seat game
type Player struct {
	ID   string `json:"id"`
	Mark Mark   `json:"mark"`
	Name string `json:"name,omitempty"`
}

// PlayerConfig for API requests and configuration
type PlayerConfig struct {
	Name string `json:"name,omitempty" validate:"omitempty,max=32,printascii"`
}

// PlayersResponse for API responses
type PlayersResponse struct {
	A *Player `json:"a"`
	B *Player `json:"b"`
}

// NewPlayer creates a Player from PlayerConfig
func NewPlayer(config PlayerConfig, mark Mark) *Player {
	name := config.Name
	if name == "" {
		name = "Player " + mark.String()
	}
	return &Player{
		ID:   uuid.New().String(),
		Mark: mark,
		Name: name,
	}
}
