package entity

type Player struct {
	Name  string `json:"name"`
	Color Color  `json:"color"`
}

func NewPlayer(name string, color Color) *Player {
	return &Player{
		Name:  name,
		Color: color,
	}
}
