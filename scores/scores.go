package scores

// Scores holds one counter per seat
type Scores struct {
	Player1 int `json:"player1" msgpack:"player1"`
	Player2 int `json:"player2" msgpack:"player2"`
}

func (s *Scores) Reset() {
	s.Player1 = 0
	s.Player2 = 0
}
