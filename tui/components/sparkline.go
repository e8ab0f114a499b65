package components

import (
	"fmt"
	"strings"
)

var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// offlineMark stands in for samples recorded while a target was unreachable.
const offlineMark = '·'

// HistorySparkline renders latency history scaled from zero to the largest
// online sample. Samples equal to offline are drawn as a dot, and the
// zero-filled slots before the first probe as blanks.
func HistorySparkline(history []int64, offline int64, width int) string {
	if len(history) > width {
		history = history[len(history)-width:]
	}
	var max int64
	for _, v := range history {
		if v != offline && v > max {
			max = v
		}
	}
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", width-len(history)))
	for _, v := range history {
		switch {
		case v == offline:
			sb.WriteRune(offlineMark)
		case v == 0:
			sb.WriteRune(' ')
		case max == 0:
			sb.WriteRune(blocks[0])
		default:
			idx := int(float64(v) / float64(max) * float64(len(blocks)-1))
			sb.WriteRune(blocks[idx])
		}
	}
	return sb.String()
}

// FormatLatency renders a latency cell.
func FormatLatency(ms int64, online bool) string {
	if !online {
		return "---"
	}
	return fmt.Sprintf("%dms", ms)
}
