package quiz

import "fmt"

// ResultMessage maps a final percentage to the encouragement line shown on
// the results screen.
func ResultMessage(percent int) string {
	switch {
	case percent >= 90:
		return "素晴らしい！N1合格レベルです！"
	case percent >= 70:
		return "よくできました！合格ラインまであと少しです。"
	case percent >= 50:
		return "基礎は身についています。間違えた問題を復習しましょう。"
	default:
		return "焦らず続けましょう。復習モードで弱点を克服できます。"
	}
}

// FormatElapsed renders seconds as M:SS (or H:MM:SS past the hour).
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
