package core

// Player is a seat at the table as reported by the server.
// One instance describes the local player, the others are opponents.
type Player struct {
	Name        string `json:"name"`
	Position    int    `json:"position"` // seat order, 1..4
	CardsLeft   int    `json:"cardsLeft"`
	IsPassed    bool   `json:"isPassed"`
	IsTurn      bool   `json:"isTurn"`
	WonLastGame bool   `json:"wonLastGame"`
	Connected   bool   `json:"connected"`
	LastPlayed  bool   `json:"lastPlayed"` // contributed to the current trick
	Score       int    `json:"score"`
}

// TotalScore sums the scores of self (may be nil) and the opponents.
func TotalScore(self *Player, opponents []Player) int {
	total := 0
	if self != nil {
		total = self.Score
	}
	for _, p := range opponents {
		total += p.Score
	}
	return total
}
