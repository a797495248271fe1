package bms

// settle prices the grid exchange of one step and folds in the correction
// penalties. Import is paid for, export is paid back at the same tier price.
func settle(price, importKW, exportKW, actionPenalty, socPenalty float64) (cost, revenue, reward float64) {
	cost = price * importKW
	revenue = price * exportKW
	reward = revenue - cost - actionPenalty - socPenalty
	return cost, revenue, reward
}
