package application

// Column is one board lane.
type Column struct {
	Status       Status
	Applications []Application
}

// Board groups applications into one column per status, in Columns order.
// Every status gets a column, empty ones included; input order is kept within a column.
func Board(apps []Application) []Column {
	idx := make(map[Status]int, len(Columns))
	board := make([]Column, len(Columns))
	for i, s := range Columns {
		idx[s] = i
		board[i] = Column{Status: s, Applications: []Application{}}
	}
	for _, a := range apps {
		i, ok := idx[a.Status()]
		if !ok {
			continue
		}
		board[i].Applications = append(board[i].Applications, a)
	}
	return board
}
