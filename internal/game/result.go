package game

// Result describes a finished game. A game finishes when its board is lost,
// when it is replaced by Reset, or when the session quits.
type Result struct {
	GameID  string
	Origin  string
	Score   uint64
	MaxTile uint64
	Moves   int
	Lost    bool
}

// ResultSaver persists finished games.
type ResultSaver interface {
	SaveResult(Result) error
}

// Report hands a finished game to saver. Nil results, a nil saver and
// games that never scored are skipped.
func Report(saver ResultSaver, r *Result) error {
	if saver == nil || r == nil || r.Score == 0 {
		return nil
	}
	return saver.SaveResult(*r)
}
