package entity

import "time"

// ClientSession is a history-server connection identified by the id sent in WelcomeClient.
type ClientSession struct {
	ID          string    `json:"id"`
	ConnectedAt time.Time `json:"connected_at"`
}

func NewClientSession(id string) *ClientSession {
	return &ClientSession{
		ID:          id,
		ConnectedAt: time.Now().UTC(),
	}
}
