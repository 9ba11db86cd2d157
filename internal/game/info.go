package game

// Title is shown in the HUD and the info overlay.
const Title = "r2048"

var ruleLines = []string{
	Title + " - slide and merge tiles",
	"",
	"Join equal tiles to double them.",
	"Every move that changes the board",
	"adds a 2 or a 4 on an empty cell.",
	"The game is lost when no move is left.",
	"",
	"Arrows, WASD or hjkl  move",
	"R                     new game",
	"I or ?                this screen",
	"Q or Esc              quit / close",
}

var noticeLines = []string{
	"r2048 Copyright (C) 2016  Gregory Katz",
	"This program comes with ABSOLUTELY NO WARRANTY;",
	"for details see www.gnu.org/licenses/gpl.txt",
	"This is free software, and you are welcome",
	"to redistribute it under certain conditions;",
	"see www.gnu.org/licenses/gpl.txt for details.",
}

// NoticeLines returns the copyright and licence notice.
func NoticeLines() []string {
	return append([]string(nil), noticeLines...)
}

// InfoLines returns the text of the info overlay: rules, controls and the
// licence notice.
func InfoLines() []string {
	out := make([]string, 0, len(ruleLines)+1+len(noticeLines))
	out = append(out, ruleLines...)
	out = append(out, "")
	return append(out, noticeLines...)
}
